// Package util provides utility functions for working with environment
// variables, version strings, and Package URLs (PURLs).
//
//revive:disable-next-line:var-naming
package util

import (
	"os"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/package-url/packageurl-go"
)

// GetEnvDefault is a convenience function for handling env vars
func GetEnvDefault(key, defVal string) string {
	val, ex := os.LookupEnv(key) // get the env var
	if !ex {                     // not found return default
		return defVal
	}
	return val // return value for env var
}

// IsEmpty checks if a string is empty or contains only whitespace
func IsEmpty(s string) bool {
	return len(strings.TrimSpace(s)) == 0
}

// IsNotEmpty checks if a string is not empty
func IsNotEmpty(s string) bool {
	return !IsEmpty(s)
}

var versionPrefixPattern = regexp.MustCompile(`^.*?-v(\d+)`)

// CleanVersion removes branch prefixes from version strings
// Examples:
//   - "main-v12.0.1376-g7ac6f3" -> "12.0.1376-g7ac6f3"
//   - "develop-v2.3.4" -> "2.3.4"
//   - "v1.2.3" -> "v1.2.3" (unchanged)
func CleanVersion(version string) string {
	if version == "" {
		return version
	}
	if versionPrefixPattern.MatchString(version) {
		matches := versionPrefixPattern.FindStringSubmatch(version)
		if len(matches) > 1 {
			return versionPrefixPattern.ReplaceAllString(version, matches[1])
		}
	}
	return version
}

// IsSemver reports whether a version string parses as a semantic version
// after stripping a leading "go" or "v" prefix
func IsSemver(version string) bool {
	cleaned := strings.TrimPrefix(strings.TrimPrefix(version, "go"), "v")
	_, err := semver.NewVersion(cleaned)
	return err == nil
}

// CleanPURL removes qualifiers (after ?) but preserves the subpath (after #)
// to maintain module identity (e.g. #v2)
func CleanPURL(purlStr string) (string, error) {
	parsed, err := packageurl.FromString(purlStr)
	if err != nil {
		return "", err
	}

	cleaned := packageurl.PackageURL{
		Type:      parsed.Type,
		Namespace: parsed.Namespace,
		Name:      parsed.Name,
		Version:   parsed.Version,
		Subpath:   parsed.Subpath,
	}

	return strings.ToLower(cleaned.ToString()), nil
}
