package platform

import (
	"strings"
)

// osVocabulary maps GOOS values whose package-manager name differs.
// Anything not listed is reported unchanged.
var osVocabulary = map[string]string{
	"windows": OSWindows,
	"solaris": "sunos",
	"illumos": "sunos",
}

// archVocabulary maps GOARCH values whose package-manager name differs.
// Anything not listed is reported unchanged.
var archVocabulary = map[string]string{
	"amd64":   ArchX64,
	"386":     ArchIA32,
	"ppc64le": "ppc64",
	"mipsle":  "mipsel",
}

// familyMap maps distribution names to their canonical family names.
// This is used to normalize variations of family strings from gopsutil.
var familyMap = map[string]string{
	"debian":   FamilyDebian,
	"ubuntu":   FamilyDebian, // gopsutil might return ubuntu as family
	"rhel":     FamilyRHEL,
	"centos":   FamilyRHEL,
	"rocky":    FamilyRHEL,
	"fedora":   FamilyFedora,
	"suse":     FamilySUSE,
	"opensuse": FamilySUSE,
	"arch":     FamilyArch,
	"manjaro":  FamilyArch,
	"alpine":   FamilyAlpine,
	"gentoo":   FamilyGentoo,
}

// hostOS reports a GOOS value in the package-manager vocabulary.
func hostOS(goos string) string {
	if name, ok := osVocabulary[goos]; ok {
		return name
	}
	return goos
}

// hostArch reports a GOARCH value in the package-manager vocabulary.
func hostArch(goarch string) string {
	if name, ok := archVocabulary[goarch]; ok {
		return name
	}
	return goarch
}

// normalizePlatform converts platform IDs to lowercase for consistency.
func normalizePlatform(platform string) string {
	return strings.ToLower(strings.TrimSpace(platform))
}

// mapFamily maps distribution family strings to canonical family names.
func mapFamily(family string) string {
	normalized := strings.ToLower(strings.TrimSpace(family))
	if canonical, ok := familyMap[normalized]; ok {
		return canonical
	}
	return FamilyUnknown
}
