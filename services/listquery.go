package services

import "strings"

// 排序方向
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// SortSpec 描述一次列表查询的排序要求，Column 必定来自白名单
type SortSpec struct {
	Column string
	Dir    string
}

// NormalizeSort 将请求中的排序参数规整为安全的排序要求。
// field 不在白名单内时退回 defaultField，dir 只认 "asc"，其余一律按 "desc" 处理。
func NormalizeSort(field, dir, defaultField string, allowed map[string]string) SortSpec {
	column, ok := allowed[field]
	if !ok {
		column = allowed[defaultField]
	}
	if dir != SortAsc {
		dir = SortDesc
	}
	return SortSpec{Column: column, Dir: dir}
}

// OrderClause 返回可直接交给存储层的排序子句
func (s SortSpec) OrderClause() string {
	return s.Column + " " + s.Dir
}

// MatchesFilter 对字段值做大小写不敏感的子串匹配。
// 空过滤条件视为不过滤；缺失字段按空字符串参与匹配。
func MatchesFilter(value, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(filter))
}
