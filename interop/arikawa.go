// Package interop converts cached values to and from arikawa's types, for sending through an arikawa client.
package interop

import (
	"encoding/json"

	"emperror.dev/errors"
	arikawa "github.com/diamondburned/arikawa/v3/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/starshine-sys/discache/discord"
	"github.com/starshine-sys/discache/payload"
)

// Embed converts either embed representation to an arikawa embed.
func Embed(e discord.EmbedBase) (arikawa.Embed, error) {
	var out arikawa.Embed

	b, err := json.Marshal(e.ToData())
	if err != nil {
		return out, errors.Wrap(err, "marshaling embed")
	}

	err = json.Unmarshal(b, &out)
	if err != nil {
		return out, errors.Wrap(err, "unmarshaling arikawa embed")
	}
	return out, nil
}

// Embeds converts a message's embeds.
func Embeds(es []discord.EmbedCore) ([]arikawa.Embed, error) {
	out := make([]arikawa.Embed, 0, len(es))
	for _, e := range es {
		ae, err := Embed(e)
		if err != nil {
			return nil, err
		}
		out = append(out, ae)
	}
	return out, nil
}

// FromEmbed converts an arikawa embed.
func FromEmbed(e arikawa.Embed) (discord.EmbedCore, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return discord.EmbedCore{}, errors.Wrap(err, "marshaling arikawa embed")
	}

	p, err := payload.Parse(b)
	if err != nil {
		return discord.EmbedCore{}, err
	}
	return discord.EmbedCoreFromData(p), nil
}

func Snowflake(id snowflake.ID) arikawa.Snowflake {
	return arikawa.Snowflake(id)
}

func FromSnowflake(s arikawa.Snowflake) snowflake.ID {
	if !s.IsValid() {
		return 0
	}
	return snowflake.ID(s)
}

// MessageIDs returns the IDs arikawa needs to act on a cached message.
func MessageIDs(m *discord.Message) (arikawa.ChannelID, arikawa.MessageID) {
	return arikawa.ChannelID(m.ChannelID), arikawa.MessageID(m.ID)
}
