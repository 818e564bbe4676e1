package classfile

// Version identifies the JDK release a class file's major version belongs to.
// The minor version never affects acceptance.
type Version uint8

const (
	Jdk1_1 Version = iota + 1
	Jdk1_2
	Jdk1_3
	Jdk1_4
	Jdk1_5
	Jdk6
	Jdk7
)

var versionNames = map[Version]string{
	Jdk1_1: "JDK 1.1",
	Jdk1_2: "JDK 1.2",
	Jdk1_3: "JDK 1.3",
	Jdk1_4: "JDK 1.4",
	Jdk1_5: "JDK 1.5",
	Jdk6:   "JDK 6",
	Jdk7:   "JDK 7",
}

func (v Version) String() string {
	if name, ok := versionNames[v]; ok {
		return name
	}
	return "unknown"
}

// VersionFrom maps a raw (major, minor) pair to a known release.
func VersionFrom(major, minor uint16) (Version, error) {
	switch major {
	case 45:
		return Jdk1_1, nil
	case 46:
		return Jdk1_2, nil
	case 47:
		return Jdk1_3, nil
	case 48:
		return Jdk1_4, nil
	case 49:
		return Jdk1_5, nil
	case 50:
		return Jdk6, nil
	case 51:
		return Jdk7, nil
	default:
		return 0, &UnsupportedVersionError{Major: major, Minor: minor}
	}
}
