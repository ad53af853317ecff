package screen

import (
	"fmt"

	"onborder/internal/jsonutil"
)

// BlockType is the declared kind of a block on the wire.
type BlockType int

const (
	BlockImage BlockType = iota
	BlockHeader
	BlockParagraph
	BlockList
	BlockButton
)

func (t BlockType) String() string {
	switch t {
	case BlockImage:
		return "image"
	case BlockHeader:
		return "header"
	case BlockParagraph:
		return "paragraph"
	case BlockList:
		return "list"
	case BlockButton:
		return "button"
	default:
		return fmt.Sprintf("BlockType(%d)", int(t))
	}
}

// ParseBlockType parses a wire type name.
func ParseBlockType(s string) (BlockType, error) {
	switch s {
	case "image":
		return BlockImage, nil
	case "header":
		return BlockHeader, nil
	case "paragraph":
		return BlockParagraph, nil
	case "list":
		return BlockList, nil
	case "button":
		return BlockButton, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownBlockType, s)
	}
}

// MarshalJSON implements json.Marshaler.
func (t BlockType) MarshalJSON() ([]byte, error) {
	return jsonutil.MarshalEnumJSON(t)
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *BlockType) UnmarshalJSON(data []byte) error {
	v, err := jsonutil.UnmarshalEnumJSON(data, ParseBlockType)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Block is one renderable unit of a screen. ID is unique within its screen
// and serves as the render key.
//
// Type is carried as declared by the producer. Data is resolved from its own
// shape, so Type and Data.Kind() can disagree for a buggy payload.
type Block struct {
	ID   string    `json:"id"`
	Type BlockType `json:"type"`
	Data Data      `json:"data"`
}
