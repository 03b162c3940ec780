package schedule

// Conflicts 返回与候选课程同教室、同一天且时间重叠的现有课程
//
// 重叠采用半开区间语义：[a,b) 与 [c,d) 重叠当且仅当 a < d && c < b，首尾相接不算重叠。
// excludeID 为正数时跳过该 ID（编辑时排除自身）。候选缺少教室或星期、时间格式错误、
// 或现有列表为空时返回 nil。结果仅供提交前提示，最终以后端裁决为准。
func Conflicts(sessions []Session, candidate Session, excludeID int) []Session {
	if len(sessions) == 0 || !hasRoom(candidate) || candidate.Day == "" {
		return nil
	}
	a, b, ok := interval(candidate.Start, candidate.End)
	if !ok {
		return nil
	}

	dayKey := Fold(candidate.Day)
	var out []Session
	for _, existing := range sessions {
		if excludeID > 0 && existing.ID == excludeID {
			continue
		}
		if !sameRoom(existing, candidate) || Fold(existing.Day) != dayKey {
			continue
		}
		c, d, ok := interval(existing.Start, existing.End)
		if !ok {
			continue
		}
		if a < d && c < b {
			out = append(out, existing)
		}
	}
	return out
}

// HasOverlap 候选课程是否与任一现有课程冲突
func HasOverlap(sessions []Session, candidate Session, excludeID int) bool {
	return len(Conflicts(sessions, candidate, excludeID)) > 0
}

func hasRoom(s Session) bool {
	return s.RoomID > 0 || s.Room != ""
}

// sameRoom 双方都有 RoomID 时按 ID 比较，否则按名称比较
func sameRoom(x, y Session) bool {
	if x.RoomID > 0 && y.RoomID > 0 {
		return x.RoomID == y.RoomID
	}
	return x.Room != "" && x.Room == y.Room
}
