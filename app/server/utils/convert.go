package utils

// P 返回值的指针
func P[T any](v T) *T {
	return &v
}

// UniqueIDs 去掉重复的 id ，保持原有顺序
func UniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	res := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		res = append(res, id)
	}
	return res
}
