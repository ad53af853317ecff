// Package screen holds the onboarding screen model and the decoder that
// turns a server payload into it.
//
// A screen is an ordered list of blocks. Each block's data is resolved by
// shape: the known shapes are tried in a fixed priority order (see Priority)
// and the first one whose required fields are all present wins. Decoding is
// all or nothing; a single block that fits no shape fails the whole screen.
package screen

import (
	"encoding/json"
	"fmt"

	"onborder/internal/jsonutil"
)

// Screen is one fully decoded onboarding page. Values are not mutated after
// Decode returns.
type Screen struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Content Content `json:"content"`
}

// Content is the body of a screen. Blocks are in render order.
// Time is passed through as sent; its meaning belongs to the producer.
type Content struct {
	Time    int     `json:"time"`
	Blocks  []Block `json:"blocks"`
	Version string  `json:"version"`
}

// Blocks returns the screen's blocks in render order.
func (s Screen) Blocks() []Block {
	return s.Content.Blocks
}

// Buttons returns the button blocks of the screen in render order.
func (s Screen) Buttons() []Button {
	var out []Button
	for _, b := range s.Content.Blocks {
		if btn, ok := b.Data.(Button); ok {
			out = append(out, btn)
		}
	}
	return out
}

type wireScreen struct {
	ID      *int         `json:"id"`
	Name    *string      `json:"name"`
	Content *wireContent `json:"content"`
}

type wireContent struct {
	Time    *int         `json:"time"`
	Blocks  *[]wireBlock `json:"blocks"`
	Version *string      `json:"version"`
}

type wireBlock struct {
	ID   *string         `json:"id"`
	Type *BlockType      `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Decode parses a serialized screen. Every envelope field is required; a block
// whose data matches no shape fails the whole screen with an error wrapping
// ErrNoVariantMatched.
func Decode(data []byte) (Screen, error) {
	var w wireScreen
	if err := jsonutil.UnmarshalWithContext(data, &w, "decode screen"); err != nil {
		return Screen{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	switch {
	case w.ID == nil:
		return Screen{}, fmt.Errorf("%w: missing id", ErrMalformed)
	case w.Name == nil:
		return Screen{}, fmt.Errorf("%w: missing name", ErrMalformed)
	case w.Content == nil:
		return Screen{}, fmt.Errorf("%w: missing content", ErrMalformed)
	case w.Content.Time == nil:
		return Screen{}, fmt.Errorf("%w: missing content.time", ErrMalformed)
	case w.Content.Blocks == nil:
		return Screen{}, fmt.Errorf("%w: missing content.blocks", ErrMalformed)
	case w.Content.Version == nil:
		return Screen{}, fmt.Errorf("%w: missing content.version", ErrMalformed)
	}

	blocks := make([]Block, 0, len(*w.Content.Blocks))
	for i, wb := range *w.Content.Blocks {
		b, err := wb.decode()
		if err != nil {
			return Screen{}, fmt.Errorf("block %d: %w", i, err)
		}
		blocks = append(blocks, b)
	}

	return Screen{
		ID:   *w.ID,
		Name: *w.Name,
		Content: Content{
			Time:    *w.Content.Time,
			Blocks:  blocks,
			Version: *w.Content.Version,
		},
	}, nil
}

func (wb wireBlock) decode() (Block, error) {
	if wb.ID == nil {
		return Block{}, fmt.Errorf("%w: missing block id", ErrMalformed)
	}
	if wb.Type == nil {
		return Block{}, fmt.Errorf("%w: block %q: missing type", ErrMalformed, *wb.ID)
	}
	if len(wb.Data) == 0 {
		return Block{}, fmt.Errorf("%w: block %q: missing data", ErrMalformed, *wb.ID)
	}
	data, err := DecodeDataJSON(wb.Data)
	if err != nil {
		return Block{}, fmt.Errorf("block %q: %w", *wb.ID, err)
	}
	return Block{ID: *wb.ID, Type: *wb.Type, Data: data}, nil
}

// UnmarshalJSON implements json.Unmarshaler with the same rules as Decode.
func (s *Screen) UnmarshalJSON(data []byte) error {
	v, err := Decode(data)
	if err != nil {
		return err
	}
	*s = v
	return nil
}
