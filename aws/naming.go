package aws

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

// The Namer interface defines the behavior of types that are able to apply custom constraints to names of resources
type Namer interface {
	// Returns a normalized name from the combination of the arguments
	Normalize(prefix, key string) string
}

// SHA1 Hash key, keep last 7 hex chars
// Prepend maxLen - shortHashLen - 1 chars from normalized prefix with a '-' as separator
// Normalization of prefix replaces all non valid chars
// Valid sets: a-z,A-Z,0-9,-
// Separator: -
// Squeeze and strip from beginning and/or end
type awsResourceNamer struct {
	maxLen int
}

const (
	shortHashLen = 7

	maxTargetGroupNameLen = 32

	nameSeparator = "-"
)

var (
	normalizationRegex = regexp.MustCompile("[^A-Za-z0-9-]+")
	squeezeDashesRegex = regexp.MustCompile("[-]{2,}")
)

// Normalize returns a normalized name which replaces invalid characters from
// the prefix with '-' and appends the last 7 chars of the SHA1 hash of the
// key. If the normalized prefix is too long, its head is cut so that the
// concatenation with a '-' char and the hash part doesn't exceed maxLen.
func (n *awsResourceNamer) Normalize(prefix, key string) string {
	sum := sha1.Sum([]byte(key))
	hash := strings.ToLower(hex.EncodeToString(sum[:]))
	hash = hash[len(hash)-shortHashLen:]

	normalized := squeezeDashesRegex.ReplaceAllString(
		normalizationRegex.ReplaceAllString(prefix, nameSeparator), nameSeparator)
	maxPrefixLen := n.maxLen - shortHashLen - 1
	if len(normalized) > maxPrefixLen {
		normalized = normalized[len(normalized)-maxPrefixLen:]
	}
	normalized = strings.Trim(normalized, nameSeparator) // trim leading/trailing separators

	return fmt.Sprintf("%s%s%s", normalized, nameSeparator, hash)
}

var (
	targetGroupNamer Namer = &awsResourceNamer{maxLen: maxTargetGroupNameLen}
)

func normalizeTargetGroupName(prefix, key string) string {
	return targetGroupNamer.Normalize(prefix, key)
}

// targetGroupName derives the name of the target group serving the listener
// on publicPort of the load balancer lbName.
func targetGroupName(lbName string, protocol string, publicPort int32) string {
	return normalizeTargetGroupName(lbName, fmt.Sprintf("%s:%s:%d", lbName, protocol, publicPort))
}
