package release

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultURLPrefix is the official package mirror
const DefaultURLPrefix = "pkg+https://pkg.FreeBSD.org"

// RepositoryURL returns the pkgbase repository URL for v. The ${ABI}
// placeholder is left for pkg to expand.
func RepositoryURL(prefix string, v VersionDescriptor) string {
	if prefix == "" {
		prefix = DefaultURLPrefix
	}
	prefix = strings.TrimRight(prefix, "/")
	if v.Rolling() {
		return prefix + "/${ABI}/base_latest"
	}
	return prefix + "/${ABI}/base_release_" + strconv.Itoa(v.Minor)
}

// FingerprintsDir returns the key directory used to verify pkgbase
// signatures. 15.0 introduced dedicated pkgbase keys; 14.x shares the
// ports keys.
func FingerprintsDir(keysDir string, v VersionDescriptor) string {
	if v.Major >= 15 {
		return filepath.Join(keysDir, "pkgbase-"+strconv.Itoa(v.Major))
	}
	return filepath.Join(keysDir, "pkg")
}

// Descriptor is a pkg repository configuration block
type Descriptor struct {
	Name          string
	URL           string
	MirrorType    string
	SignatureType string
	Fingerprints  string
	Enabled       bool
}

// DescriptorOptions are the site-specific parts of a Descriptor
type DescriptorOptions struct {
	Name          string
	URLPrefix     string
	MirrorType    string
	SignatureType string
	KeysDir       string
}

// NewDescriptor builds the repository descriptor for v
func NewDescriptor(opts DescriptorOptions, v VersionDescriptor) Descriptor {
	return Descriptor{
		Name:          opts.Name,
		URL:           RepositoryURL(opts.URLPrefix, v),
		MirrorType:    opts.MirrorType,
		SignatureType: opts.SignatureType,
		Fingerprints:  FingerprintsDir(opts.KeysDir, v),
		Enabled:       true,
	}
}

// Render formats the descriptor in pkg.conf(5) syntax
func (d Descriptor) Render() string {
	enabled := "no"
	if d.Enabled {
		enabled = "yes"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: {\n", d.Name)
	fmt.Fprintf(&b, "  url: %q,\n", d.URL)
	fmt.Fprintf(&b, "  mirror_type: %q,\n", d.MirrorType)
	fmt.Fprintf(&b, "  signature_type: %q,\n", d.SignatureType)
	fmt.Fprintf(&b, "  fingerprints: %q,\n", d.Fingerprints)
	fmt.Fprintf(&b, "  enabled: %s\n", enabled)
	b.WriteString("}\n")
	return b.String()
}

// FileName is the repository configuration file name for the descriptor
func (d Descriptor) FileName() string {
	return d.Name + ".conf"
}
