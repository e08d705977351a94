package world

// Serial identifies a game entity. Mobiles live below 0x40000000, items above.
type Serial uint32

func (s Serial) IsValid() bool  { return s != 0 && s < 0x80000000 }
func (s Serial) IsMobile() bool { return s != 0 && s < 0x40000000 }
func (s Serial) IsItem() bool   { return s >= 0x40000000 && s < 0x80000000 }

// Graphic is an art or gump asset id.
type Graphic uint16

// Layer is an equipment slot on a mobile.
type Layer uint8

const (
	LayerBackpack Layer = 0x15
	LayerBank     Layer = 0x1D
)

// Point is a screen or container-local position in pixels.
type Point struct {
	X, Y int
}

type Item struct {
	Serial  Serial
	Graphic Graphic // displayed graphic
	Hue     uint16

	// X, Y is the stored offset inside the parent container.
	X, Y int

	// Container is the parent serial, 0 when the item lies in the world.
	Container Serial

	// ContainerGraphic is the gump shown when this item is opened as a container.
	ContainerGraphic Graphic

	// Screen is the on-screen position of the item when it lies in the world.
	Screen Point

	Lootable  bool
	Destroyed bool

	children []Serial
}

// OnGround reports whether the item lies in the world rather than inside something.
func (i *Item) OnGround() bool { return i.Container == 0 }

type Mobile struct {
	Serial Serial
	Screen Point
}

type Player struct {
	Serial    Serial
	Screen    Point
	Equipment map[Layer]Serial

	ManualOpenedCorpses map[Serial]struct{}
	AutoOpenedCorpses   map[Serial]struct{}
}

func NewPlayer(serial Serial) *Player {
	return &Player{
		Serial:              serial,
		Equipment:           make(map[Layer]Serial),
		ManualOpenedCorpses: make(map[Serial]struct{}),
		AutoOpenedCorpses:   make(map[Serial]struct{}),
	}
}

// Backpack returns the serial equipped on the backpack layer, or 0.
func (p *Player) Backpack() Serial {
	if p == nil {
		return 0
	}
	return p.Equipment[LayerBackpack]
}

// Bank returns the serial equipped on the bank layer, or 0.
func (p *Player) Bank() Serial {
	if p == nil {
		return 0
	}
	return p.Equipment[LayerBank]
}
