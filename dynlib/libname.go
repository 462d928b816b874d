package dynlib

import (
	"fmt"
	"runtime"
	"strings"
)

const (
	// DefaultNameCapacity is the capacity used for constructed names when none is configured.
	DefaultNameCapacity = 4096

	// nameOverhead is the room reserved beyond path and file name for the
	// separator, extension and terminating NUL.
	nameOverhead = 10
)

// Platform describes how a platform spells shared library file names.
type Platform struct {
	// Prefix is prepended to the base name, for example "lib".
	Prefix string
	// Extension is the file extension without the leading dot.
	Extension string
	// Separator joins a directory and a file name.
	Separator byte
	// Roots lists the characters that, when they end a path, need no separator.
	Roots string
}

var (
	// Windows names libraries "<name>.dll".
	Windows = Platform{Extension: "dll", Separator: '\\', Roots: ":\\"}
	// Linux names libraries "lib<name>.so".
	Linux = Platform{Prefix: "lib", Extension: "so", Separator: '/', Roots: "/"}
	// Darwin names libraries "lib<name>.dylib".
	Darwin = Platform{Prefix: "lib", Extension: "dylib", Separator: '/', Roots: "/"}
)

// PlatformFor returns the naming convention for a GOOS value.
func PlatformFor(goos string) (Platform, bool) {
	switch goos {
	case "windows":
		return Windows, true
	case "darwin", "ios":
		return Darwin, true
	case "linux", "android", "freebsd", "netbsd", "openbsd", "dragonfly", "solaris", "illumos", "aix":
		return Linux, true
	}
	return Platform{}, false
}

// HostPlatform returns the naming convention of the running platform.
func HostPlatform() Platform {
	if p, ok := PlatformFor(runtime.GOOS); ok {
		return p
	}
	return Linux
}

// fits reports whether a name built from path and fileName fits capacity
// bytes including its NUL terminator. Names longer than the fixed
// allowance, such as "<dir>/lib<name>.dylib", need the extra check.
func (p Platform) fits(path, fileName string, capacity int) bool {
	if len(path)+len(fileName)+nameOverhead > capacity {
		return false
	}
	return len(p.compose(path, fileName)) < capacity
}

func (p Platform) compose(path, fileName string) string {
	var b strings.Builder
	b.Grow(len(path) + len(fileName) + nameOverhead)

	if path != "" {
		b.WriteString(path)
		if strings.IndexByte(p.Roots, path[len(path)-1]) < 0 {
			b.WriteByte(p.Separator)
		}
	}
	b.WriteString(p.Prefix)
	b.WriteString(fileName)
	b.WriteByte('.')
	b.WriteString(p.Extension)
	return b.String()
}

// LibraryName builds the platform file name for fileName inside path.
//
// An empty path yields a bare name for the system loader to search. A path
// ending in one of the platform root characters is joined without a
// separator. When the result would not fit capacity, LibraryName returns ""
// rather than a truncated name; a capacity of zero or less is unbounded.
func (p Platform) LibraryName(path, fileName string, capacity int) string {
	if capacity > 0 && !p.fits(path, fileName, capacity) {
		return ""
	}
	return p.compose(path, fileName)
}

// BuildLibraryName writes the platform file name for fileName inside path
// into holder as a NUL-terminated string and returns its length.
//
// Quietly writes an empty string when len(path)+len(fileName)+10 exceeds
// len(holder), or when the name and its NUL do not fit. Use a Namer with WithStrictNames to
// get an error instead.
func (p Platform) BuildLibraryName(holder []byte, path, fileName string) int {
	if len(holder) == 0 {
		return 0
	}
	if !p.fits(path, fileName, len(holder)) {
		holder[0] = 0
		return 0
	}
	return writeCString(holder, p.compose(path, fileName), len(holder)-1)
}

// BuildLibraryName is Platform.BuildLibraryName for the running platform.
func BuildLibraryName(holder []byte, path, fileName string) int {
	return HostPlatform().BuildLibraryName(holder, path, fileName)
}

// Namer builds library names with a fixed configuration.
type Namer struct {
	platform Platform
	capacity int
	strict   bool
}

// NewNamer returns a Namer configured from the environment and opts.
func NewNamer(opts ...Option) (*Namer, error) {
	cfg, err := resolveConfig(opts...)
	if err != nil {
		return nil, err
	}
	return &Namer{platform: cfg.platform, capacity: cfg.capacity, strict: cfg.strictNames}, nil
}

// Platform returns the naming convention used by n.
func (n *Namer) Platform() Platform {
	return n.platform
}

// Name builds the library name for fileName inside path. A name that does
// not fit the configured capacity is returned as "" with a nil error, or as
// ErrNameTooLong in strict mode.
func (n *Namer) Name(path, fileName string) (string, error) {
	name := n.platform.LibraryName(path, fileName, n.capacity)
	if name == "" && n.strict {
		return "", fmt.Errorf("%w: %d bytes available for %q in %q", ErrNameTooLong, n.capacity, fileName, path)
	}
	return name, nil
}
