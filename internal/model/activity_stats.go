package model

// CountBucket is one grouped tally in an activity stats breakdown.
type CountBucket struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// ActivityStats is the aggregated view of a filtered activity set.
// UniqueUsers is the cardinality of distinct user IDs in the filtered set,
// not a sum of per-group counts.
type ActivityStats struct {
	TotalCount    int64         `json:"totalCount"`
	UniqueUsers   int64         `json:"uniqueUsers"`
	ByAction      []CountBucket `json:"byAction"`
	ByApplication []CountBucket `json:"byApplication"`
	ByResource    []CountBucket `json:"byResource"`
}
