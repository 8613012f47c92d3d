package aws

import (
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

func ec2TagsToMap(tags []ec2types.Tag) map[string]string {
	m := make(map[string]string, len(tags))
	for _, t := range tags {
		m[aws.ToString(t.Key)] = aws.ToString(t.Value)
	}
	return m
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// mapToEC2Tags returns the tags sorted by key.
func mapToEC2Tags(m map[string]string) []ec2types.Tag {
	tags := make([]ec2types.Tag, 0, len(m))
	for _, k := range sortedKeys(m) {
		tags = append(tags, ec2types.Tag{Key: aws.String(k), Value: aws.String(m[k])})
	}
	return tags
}

// tagFilters returns a server side tag filter for every entry of m, sorted by
// key.
func tagFilters(m map[string]string) []ec2types.Filter {
	filters := make([]ec2types.Filter, 0, len(m))
	for _, t := range mapToEC2Tags(m) {
		filters = append(filters, ec2types.Filter{
			Name:   aws.String("tag:" + aws.ToString(t.Key)),
			Values: []string{aws.ToString(t.Value)},
		})
	}
	return filters
}
