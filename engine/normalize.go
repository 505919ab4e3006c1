package engine

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/ortelius/vulnview-backend/model"
	"github.com/ortelius/vulnview-backend/util"
)

// candidate is a raw record plus the identifiers inherited from the
// nested group/repo/image/version walk
type candidate struct {
	node      map[string]interface{}
	groupName string
	imageName string
	version   string
}

// NormalizeJSON parses a raw dataset document and normalizes it into the
// flat record sequence. The document bytes may be discarded afterwards.
func NormalizeJSON(data []byte) ([]model.VulnerabilityRecord, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &FormatError{Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}
	return Normalize(raw)
}

// Normalize converts an arbitrary parsed JSON value into a flat sequence
// of VulnerabilityRecord. The input is never mutated.
func Normalize(raw interface{}) ([]model.VulnerabilityRecord, error) {
	candidates, err := resolveCandidates(raw)
	if err != nil {
		return nil, err
	}

	records := make([]model.VulnerabilityRecord, 0, len(candidates))
	for i, c := range candidates {
		records = append(records, normalizeCandidate(c, i))
	}
	return records, nil
}

// resolveCandidates locates the record array inside the raw value.
// Container keys are tried in priority order: the nested
// group/repo/image/version structure, "vulnerabilities", "data",
// "items", and finally a single-key object's value.
func resolveCandidates(raw interface{}) ([]candidate, error) {
	switch v := raw.(type) {
	case []interface{}:
		return plainCandidates(v), nil
	case map[string]interface{}:
		if looksGrouped(v) {
			return flattenGroups(v), nil
		}
		for _, key := range []string{"vulnerabilities", "data", "items"} {
			if arr, ok := v[key].([]interface{}); ok {
				return plainCandidates(arr), nil
			}
		}
		if len(v) == 1 {
			// Wrapper objects like {"scanResults": {...}} unwrap one
			// level at a time.
			for _, only := range v {
				return resolveCandidates(only)
			}
		}
		return nil, &FormatError{Reason: "no recognized container key"}
	default:
		return nil, &FormatError{Reason: "top-level value is neither an array nor an object"}
	}
}

func plainCandidates(arr []interface{}) []candidate {
	out := make([]candidate, 0, len(arr))
	for _, el := range arr {
		if m, ok := el.(map[string]interface{}); ok {
			out = append(out, candidate{node: m})
		}
	}
	return out
}

// looksGrouped detects the nested group->repo->image->version shape:
// every value two levels down is itself an object. All entries are
// checked so detection does not depend on map iteration order.
func looksGrouped(m map[string]interface{}) bool {
	if len(m) == 0 {
		return false
	}
	for _, groupAny := range m {
		group, ok := groupAny.(map[string]interface{})
		if !ok || len(group) == 0 {
			return false
		}
		for _, repoAny := range group {
			repo, ok := repoAny.(map[string]interface{})
			if !ok || len(repo) == 0 {
				return false
			}
			for _, imageAny := range repo {
				if _, ok := imageAny.(map[string]interface{}); !ok {
					return false
				}
			}
		}
	}
	return true
}

// flattenGroups walks the four nesting levels and emits one candidate
// per leaf vulnerability entry. Map iteration order is randomized in Go,
// so keys are walked sorted to keep the output deterministic.
func flattenGroups(groups map[string]interface{}) []candidate {
	var out []candidate
	for _, groupKey := range sortedKeys(groups) {
		group, ok := groups[groupKey].(map[string]interface{})
		if !ok {
			continue
		}
		for _, repoKey := range sortedKeys(group) {
			repo, ok := group[repoKey].(map[string]interface{})
			if !ok {
				continue
			}
			for _, imageKey := range sortedKeys(repo) {
				image, ok := repo[imageKey].(map[string]interface{})
				if !ok {
					continue
				}
				imageName := repoKey + "/" + imageKey
				if _, direct := image["vulnerabilities"].([]interface{}); direct || hasRecordShape(image) {
					// No per-version level below this image
					out = append(out, leafCandidates(image, groupKey, imageName, "")...)
					continue
				}
				for _, versionKey := range sortedKeys(image) {
					node, ok := image[versionKey].(map[string]interface{})
					if !ok {
						continue
					}
					out = append(out, leafCandidates(node, groupKey, imageName, versionKey)...)
				}
			}
		}
	}
	return out
}

// leafCandidates emits the vulnerability entries carried by an image
// node, or the node itself when it already looks like a record.
func leafCandidates(node map[string]interface{}, groupName, imageName, version string) []candidate {
	if arr, ok := node["vulnerabilities"].([]interface{}); ok {
		out := make([]candidate, 0, len(arr))
		for _, el := range arr {
			if m, ok := el.(map[string]interface{}); ok {
				out = append(out, candidate{node: m, groupName: groupName, imageName: imageName, version: version})
			}
		}
		return out
	}
	if hasRecordShape(node) {
		return []candidate{{node: node, groupName: groupName, imageName: imageName, version: version}}
	}
	return nil
}

// hasRecordShape reports whether a node carries a name or severity and
// can therefore stand in as a record of its own
func hasRecordShape(node map[string]interface{}) bool {
	for _, key := range []string{"name", "package", "packageName", "severity"} {
		if s, ok := node[key].(string); ok && s != "" {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// normalizeCandidate coerces one raw candidate into the uniform record
// shape. Malformed fields are absorbed silently; the record is always
// retained.
func normalizeCandidate(c candidate, index int) model.VulnerabilityRecord {
	fields := foldKeys(c.node)

	rec := model.VulnerabilityRecord{
		ID:          stringField(fields, "id"),
		Package:     stringField(fields, "package", "packagename", "package_name", "name"),
		Severity:    titleCase(stringField(fields, "severity")),
		Version:     stringField(fields, "version"),
		KaiStatus:   stringField(fields, "kaistatus", "kai_status"),
		Cve:         stringField(fields, "cve", "cveid", "cve_id"),
		Description: stringField(fields, "description"),
		GroupName:   stringField(fields, "groupname", "group_name"),
		ImageName:   stringField(fields, "imagename", "image_name"),
	}

	if rec.ID == "" {
		rec.ID = "vuln-" + strconv.Itoa(index)
	}
	if strings.HasPrefix(rec.Package, "pkg:") {
		if cleaned, err := util.CleanPURL(rec.Package); err == nil {
			rec.Package = cleaned
		}
	}
	if rec.Version == "" {
		rec.Version = c.version
	}
	rec.Version = util.CleanVersion(rec.Version)
	if rec.GroupName == "" {
		rec.GroupName = c.groupName
	}
	if rec.ImageName == "" {
		rec.ImageName = c.imageName
	}

	rec.Cvss = numberField(fields, "cvss")
	if rec.Cvss == nil {
		if vector := stringField(fields, "cvssvector", "cvss_vector", "vector"); vector != "" {
			if score := util.CalculateCVSSScore(vector); score > 0 {
				rec.Cvss = &score
			}
		}
	}

	rec.RiskFactors = normalizeRiskFactors(fields["riskfactors"])
	if rec.RiskFactors == nil {
		rec.RiskFactors = normalizeRiskFactors(fields["risk_factors"])
	}

	rec.Timestamp = timeField(fields, "timestamp")
	if rec.Timestamp == nil {
		rec.Timestamp = timeField(fields, "published", "publisheddate", "published_date")
	}

	return rec
}

// foldKeys builds a lowercase-key index over a candidate map so that
// inconsistently cased input resolves without per-field scans. On a
// casing collision the lexicographically smallest original key wins,
// keeping the result independent of map iteration order.
func foldKeys(m map[string]interface{}) map[string]interface{} {
	folded := make(map[string]interface{}, len(m))
	winner := make(map[string]string, len(m))
	for k, v := range m {
		lk := strings.ToLower(k)
		if prev, ok := winner[lk]; ok && prev <= k {
			continue
		}
		winner[lk] = k
		folded[lk] = v
	}
	return folded
}

func stringField(fields map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if s, ok := fields[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func numberField(fields map[string]interface{}, key string) *float64 {
	switch v := fields[key].(type) {
	case float64:
		return &v
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return &f
		}
	}
	return nil
}

func timeField(fields map[string]interface{}, keys ...string) *time.Time {
	for _, k := range keys {
		s, ok := fields[k].(string)
		if !ok || s == "" {
			continue
		}
		if t, err := dateparse.ParseAny(s); err == nil {
			return &t
		}
	}
	return nil
}

// normalizeRiskFactors accepts the two source encodings of risk factors:
// a native sequence of labels or a keyed mapping whose keys are the
// labels. Either form yields a deduplicated label slice; the mapping
// form is sorted since its iteration order carries no meaning.
func normalizeRiskFactors(raw interface{}) []string {
	switch v := raw.(type) {
	case []interface{}:
		seen := make(map[string]struct{}, len(v))
		out := make([]string, 0, len(v))
		for _, el := range v {
			s, ok := el.(string)
			if !ok || s == "" {
				continue
			}
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
		return out
	case map[string]interface{}:
		out := make([]string, 0, len(v))
		for label := range v {
			if label != "" {
				out = append(out, label)
			}
		}
		sort.Strings(out)
		return out
	default:
		return nil
	}
}

// titleCase canonicalizes a severity label to first-letter-upper form
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
