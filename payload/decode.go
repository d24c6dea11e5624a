package payload

import (
	"time"

	"emperror.dev/errors"
	"github.com/mitchellh/mapstructure"
)

// Decode decodes the payload into out, which must be a pointer to a struct.
// Struct fields are matched by their json tag; snowflakes and numbers encoded as strings are converted.
func (p Payload) Decode(out any) error {
	m := p.Map()
	if m == nil {
		return errors.New("payload is not an object")
	}
	return decode(m, out)
}

// DecodeKey decodes the object at key into out. It returns false if the key is absent, null, or not an object.
func (p Payload) DecodeKey(key string, out any) (bool, error) {
	sub, ok := p.Get(key)
	if !ok {
		return false, nil
	}
	return true, sub.Decode(out)
}

func decode(input, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeHookFunc(time.RFC3339),
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           out,
	})
	if err != nil {
		return errors.Wrap(err, "creating decoder")
	}

	return errors.Wrap(dec.Decode(input), "decoding payload")
}
