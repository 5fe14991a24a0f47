package enums

type Orientation string

const (
	OrientationStraight    Orientation = "straight"
	OrientationGay         Orientation = "gay"
	OrientationBisexual    Orientation = "bisexual"
	OrientationUnspecified Orientation = "unspecified"
)

func (o Orientation) Valid() bool {
	switch o {
	case OrientationStraight, OrientationGay, OrientationBisexual, OrientationUnspecified:
		return true
	default:
		return false
	}
}
