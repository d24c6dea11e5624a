package state

import (
	"sort"

	"emperror.dev/errors"
	"github.com/disgoorg/snowflake/v2"
	"github.com/starshine-sys/discache/payload"
)

type dispatchFunc func(s *State, p payload.Payload) (Event, error)

// dispatchers maps gateway event names to the function that applies them.
var dispatchers = map[string]dispatchFunc{
	"GUILD_CREATE": func(s *State, p payload.Payload) (Event, error) {
		g, err := s.GuildFromData(p, s.clientID)
		if err != nil {
			return nil, err
		}
		return &GuildCreateEvent{Guild: g}, nil
	},
	"GUILD_UPDATE": func(s *State, p payload.Payload) (Event, error) {
		g, diff, err := s.UpdateGuild(p)
		if err != nil {
			return nil, err
		}
		return &GuildUpdateEvent{Guild: g, Diff: diff}, nil
	},
	"GUILD_DELETE": func(s *State, p payload.Payload) (Event, error) {
		id, err := p.RequireID("id")
		if err != nil {
			return nil, err
		}
		unavailable, _ := p.Bool("unavailable")

		g, destroyed, err := s.GuildDelete(p, s.clientID)
		if err != nil {
			return nil, err
		}
		return &GuildDeleteEvent{GuildID: id, Guild: g, Unavailable: unavailable, Destroyed: destroyed}, nil
	},
	"GUILD_EMOJIS_UPDATE": func(s *State, p payload.Payload) (Event, error) {
		g, diff, err := s.GuildEmojisUpdate(p)
		if err != nil {
			return nil, err
		}
		return &GuildEmojisUpdateEvent{Guild: g, Diff: diff}, nil
	},
	"GUILD_ROLE_CREATE": func(s *State, p payload.Payload) (Event, error) {
		guildID, rp, err := guildAndObject(p, "role")
		if err != nil {
			return nil, err
		}
		r, err := s.RoleFromData(guildID, rp)
		if err != nil {
			return nil, err
		}
		return &RoleCreateEvent{Role: r}, nil
	},
	"GUILD_ROLE_UPDATE": func(s *State, p payload.Payload) (Event, error) {
		guildID, rp, err := guildAndObject(p, "role")
		if err != nil {
			return nil, err
		}
		r, diff, err := s.UpdateRole(guildID, rp)
		if err != nil {
			return nil, err
		}
		return &RoleUpdateEvent{Role: r, Diff: diff}, nil
	},
	"GUILD_ROLE_DELETE": func(s *State, p payload.Payload) (Event, error) {
		guildID, err := p.RequireID("guild_id")
		if err != nil {
			return nil, err
		}
		roleID, err := p.RequireID("role_id")
		if err != nil {
			return nil, err
		}
		r, _ := s.DestroyRole(guildID, roleID)
		return &RoleDeleteEvent{GuildID: guildID, RoleID: roleID, Role: r}, nil
	},
	"CHANNEL_CREATE": func(s *State, p payload.Payload) (Event, error) {
		ch, err := s.ChannelFromData(p, 0)
		if err != nil {
			return nil, err
		}
		return &ChannelCreateEvent{Channel: ch}, nil
	},
	"CHANNEL_UPDATE": func(s *State, p payload.Payload) (Event, error) {
		ch, diff, err := s.UpdateChannel(p)
		if err != nil {
			return nil, err
		}
		return &ChannelUpdateEvent{Channel: ch, Diff: diff}, nil
	},
	"CHANNEL_DELETE": func(s *State, p payload.Payload) (Event, error) {
		id, err := p.RequireID("id")
		if err != nil {
			return nil, err
		}
		ch, _ := s.DestroyChannel(id)
		return &ChannelDeleteEvent{ChannelID: id, Channel: ch}, nil
	},
	"GUILD_MEMBER_ADD": func(s *State, p payload.Payload) (Event, error) {
		guildID, err := p.RequireID("guild_id")
		if err != nil {
			return nil, err
		}
		m, err := s.MemberAdd(guildID, p)
		if err != nil {
			return nil, err
		}
		return &MemberAddEvent{Member: m}, nil
	},
	"GUILD_MEMBER_UPDATE": func(s *State, p payload.Payload) (Event, error) {
		guildID, err := p.RequireID("guild_id")
		if err != nil {
			return nil, err
		}
		m, diff, err := s.UpdateMember(guildID, p)
		if err != nil {
			return nil, err
		}
		return &MemberUpdateEvent{Member: m, Diff: diff}, nil
	},
	"GUILD_MEMBER_REMOVE": func(s *State, p payload.Payload) (Event, error) {
		guildID, userP, err := guildAndObject(p, "user")
		if err != nil {
			return nil, err
		}
		userID, err := userP.RequireID("id")
		if err != nil {
			return nil, err
		}
		m, _ := s.MemberRemove(guildID, userID)
		return &MemberRemoveEvent{GuildID: guildID, UserID: userID, Member: m}, nil
	},
	"USER_UPDATE": func(s *State, p payload.Payload) (Event, error) {
		u, diff, err := s.UpdateUser(p)
		if err != nil {
			return nil, err
		}
		return &UserUpdateEvent{User: u, Diff: diff}, nil
	},
	"MESSAGE_CREATE": func(s *State, p payload.Payload) (Event, error) {
		m, err := s.MessageFromData(p)
		if err != nil {
			return nil, err
		}
		return &MessageCreateEvent{Message: m}, nil
	},
	"MESSAGE_UPDATE": func(s *State, p payload.Payload) (Event, error) {
		m, diff, err := s.UpdateMessage(p)
		if err != nil {
			return nil, err
		}
		return &MessageUpdateEvent{Message: m, Diff: diff}, nil
	},
	"MESSAGE_DELETE": func(s *State, p payload.Payload) (Event, error) {
		id, err := p.RequireID("id")
		if err != nil {
			return nil, err
		}
		channelID, _ := p.ID("channel_id")
		m, _ := s.DeleteMessage(id)
		return &MessageDeleteEvent{MessageID: id, ChannelID: channelID, Message: m}, nil
	},
	"MESSAGE_DELETE_BULK": func(s *State, p payload.Payload) (Event, error) {
		ids := p.IDs("ids")
		channelID, _ := p.ID("channel_id")
		msgs := s.BulkDeleteMessages(ids)
		return &MessageDeleteBulkEvent{MessageIDs: ids, ChannelID: channelID, Messages: msgs}, nil
	},
	"MESSAGE_REACTION_ADD": func(s *State, p payload.Payload) (Event, error) {
		ev, err := reactionEvent(p)
		if err != nil {
			return nil, err
		}
		ev.Message = s.ReactionAdd(ev.MessageID, ev.UserID, ev.Emoji)
		return (*ReactionAddEvent)(ev), nil
	},
	"MESSAGE_REACTION_REMOVE": func(s *State, p payload.Payload) (Event, error) {
		ev, err := reactionEvent(p)
		if err != nil {
			return nil, err
		}
		ev.Message = s.ReactionRemove(ev.MessageID, ev.UserID, ev.Emoji)
		return (*ReactionRemoveEvent)(ev), nil
	},
	"MESSAGE_REACTION_REMOVE_ALL": func(s *State, p payload.Payload) (Event, error) {
		id, err := p.RequireID("message_id")
		if err != nil {
			return nil, err
		}
		channelID, _ := p.ID("channel_id")
		m := s.ReactionRemoveAll(id)
		return &ReactionRemoveAllEvent{MessageID: id, ChannelID: channelID, Message: m}, nil
	},
	"MESSAGE_REACTION_REMOVE_EMOJI": func(s *State, p payload.Payload) (Event, error) {
		id, err := p.RequireID("message_id")
		if err != nil {
			return nil, err
		}
		channelID, _ := p.ID("channel_id")
		emoji, err := reactionEmoji(p)
		if err != nil {
			return nil, err
		}
		m := s.ReactionRemoveEmoji(id, emoji)
		return &ReactionRemoveEmojiEvent{MessageID: id, ChannelID: channelID, Emoji: emoji, Message: m}, nil
	},
}

// Events returns the names of every event Dispatch handles, sorted.
func Events() []string {
	names := make([]string, 0, len(dispatchers))
	for name := range dispatchers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch applies a gateway event to the state, then calls every handler added for its event type.
// Unknown event names return an error wrapping ErrUnknownEvent.
func (s *State) Dispatch(name string, p payload.Payload) (Event, error) {
	fn, ok := dispatchers[name]
	if !ok {
		return nil, errors.WithMessagef(ErrUnknownEvent, "event %q", name)
	}

	ev, err := fn(s, p)
	if err != nil {
		return nil, errors.Wrapf(err, "dispatching %v", name)
	}

	s.handlersMu.RLock()
	handlers := s.handlers
	s.handlersMu.RUnlock()

	for _, h := range handlers {
		h(ev)
	}
	return ev, nil
}

// AddHandler adds a handler called after every dispatched event of type T.
// Handlers run on the dispatching goroutine, without the state locked.
func AddHandler[T Event](s *State, fn func(T)) {
	s.handlersMu.Lock()
	defer s.handlersMu.Unlock()

	s.handlers = append(s.handlers, func(ev Event) {
		if ev, ok := ev.(T); ok {
			fn(ev)
		}
	})
}

func guildAndObject(p payload.Payload, key string) (snowflake.ID, payload.Payload, error) {
	guildID, err := p.RequireID("guild_id")
	if err != nil {
		return 0, payload.Payload{}, err
	}

	obj, ok := p.Get(key)
	if !ok {
		return 0, payload.Payload{}, errors.WithMessagef(payload.ErrMissingField, "field %q", key)
	}
	return guildID, obj, nil
}

// reactionFields is the shape shared by reaction add and remove events.
type reactionFields ReactionAddEvent

func reactionEvent(p payload.Payload) (*reactionFields, error) {
	id, err := p.RequireID("message_id")
	if err != nil {
		return nil, err
	}
	userID, err := p.RequireID("user_id")
	if err != nil {
		return nil, err
	}
	channelID, _ := p.ID("channel_id")

	emoji, err := reactionEmoji(p)
	if err != nil {
		return nil, err
	}

	return &reactionFields{MessageID: id, ChannelID: channelID, UserID: userID, Emoji: emoji}, nil
}
