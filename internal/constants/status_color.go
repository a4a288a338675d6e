package constants

type StatusColor string

const (
	ColorBlue   StatusColor = "blue"
	ColorOrange StatusColor = "orange"
	ColorGreen  StatusColor = "green"
	ColorRed    StatusColor = "red"
	ColorPurple StatusColor = "purple"
	ColorPink   StatusColor = "pink"
	ColorYellow StatusColor = "yellow"
	ColorGray   StatusColor = "gray"
)

const DefaultStatusColor = ColorBlue

func (c StatusColor) Valid() bool {
	switch c {
	case ColorBlue, ColorOrange, ColorGreen, ColorRed, ColorPurple, ColorPink, ColorYellow, ColorGray:
		return true
	}
	return false
}
