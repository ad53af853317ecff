package screen

// Data is the decoded payload of a block. It is a closed union: the only
// implementations are Image, Header, Paragraph, List and Button.
type Data interface {
	Kind() BlockType
	isData()
}

// Image is a picture with an optional caption.
type Image struct {
	URL            string `json:"url"`
	Caption        string `json:"caption"`
	WithBorder     bool   `json:"withBorder"`
	WithBackground bool   `json:"withBackground"`
	Stretched      bool   `json:"stretched"`
}

// Header is a heading; Level 1 is the most prominent.
type Header struct {
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// Paragraph is body text.
type Paragraph struct {
	Text string `json:"text"`
}

// List is an ordered sequence of items. Style is free-form as sent by the
// producer ("ordered" and "unordered" are the common values).
type List struct {
	Style string   `json:"style"`
	Items []string `json:"items"`
}

// Button is a pressable control. Link is an opaque action identifier, not a URL.
type Button struct {
	Link string `json:"link"`
	Text string `json:"text"`
}

func (Image) Kind() BlockType     { return BlockImage }
func (Header) Kind() BlockType    { return BlockHeader }
func (Paragraph) Kind() BlockType { return BlockParagraph }
func (List) Kind() BlockType      { return BlockList }
func (Button) Kind() BlockType    { return BlockButton }

func (Image) isData()     {}
func (Header) isData()    {}
func (Paragraph) isData() {}
func (List) isData()      {}
func (Button) isData()    {}
