package schedule

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortNames 按西班牙语区域规则排序，数字部分按数值比较（"Aula 2" < "Aula 10"），忽略大小写与重音
// 排序规则下相等的名称按原始字节序排列，结果与输入顺序无关
func SortNames(names []string) {
	// Collator 非并发安全，每次调用单独创建
	col := collate.New(language.Spanish, collate.Numeric, collate.IgnoreCase, collate.IgnoreDiacritics)
	sort.SliceStable(names, func(i, j int) bool {
		if c := col.CompareString(names[i], names[j]); c != 0 {
			return c < 0
		}
		return names[i] < names[j]
	})
}

// DistinctRooms 提取去重后的教室名称（用作矩阵列头），按 SortNames 排序
func DistinctRooms(sessions []Session) []string {
	seen := make(map[string]struct{}, len(sessions))
	rooms := make([]string, 0)
	for _, s := range sessions {
		if s.Room == "" {
			continue
		}
		if _, ok := seen[s.Room]; ok {
			continue
		}
		seen[s.Room] = struct{}{}
		rooms = append(rooms, s.Room)
	}
	SortNames(rooms)
	return rooms
}

// CapacityByRoom 每间教室在所有课程记录中出现的最大容量
//
// 同一教室在不同记录中容量可能不一致，展示时取最大值。
func CapacityByRoom(sessions []Session) map[string]int {
	caps := make(map[string]int)
	for _, s := range sessions {
		if s.Room == "" {
			continue
		}
		if cur, ok := caps[s.Room]; !ok || s.Capacity > cur {
			caps[s.Room] = max(s.Capacity, 0)
		}
	}
	return caps
}
