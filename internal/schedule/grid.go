package schedule

// Session 网格计算所需的课程记录（来自远端 API，仅用于构建只读索引）
type Session struct {
	ID       int
	RoomID   int
	Room     string
	DayID    int
	Day      string
	Start    string // HH:MM
	End      string // HH:MM
	Subject  string
	Teacher  string
	Capacity int
	Level    string
}

// Index 三级只读索引：room → day → slot → session
//
// 缺失的条目即"空闲"。day 键按 Fold 归一化，查询时忽略大小写与重音。
type Index struct {
	cells map[string]map[string]map[Clock]Session
}

// BuildIndex 将课程列表展开到 07:00–21:00 网格
//
// 每个课程占用起点落在其 [Start, End) 内的全部时段；时间格式错误的课程不占用任何时段。
// 同一格出现多门课程时以列表中靠后者为准（数据不一致由后端负责）。
func BuildIndex(sessions []Session) *Index {
	idx := &Index{cells: make(map[string]map[string]map[Clock]Session)}
	slots := Slots()

	for _, sess := range sessions {
		dayKey := Fold(sess.Day)
		for _, slot := range slots {
			if !covers(sess, slot) {
				continue
			}
			byDay, ok := idx.cells[sess.Room]
			if !ok {
				byDay = make(map[string]map[Clock]Session)
				idx.cells[sess.Room] = byDay
			}
			bySlot, ok := byDay[dayKey]
			if !ok {
				bySlot = make(map[Clock]Session)
				byDay[dayKey] = bySlot
			}
			bySlot[slot.Start] = sess
		}
	}

	return idx
}

// Lookup 查询 (room, day, slot) 的占用课程
func (idx *Index) Lookup(room, day string, slot Slot) (Session, bool) {
	if idx == nil {
		return Session{}, false
	}
	sess, ok := idx.cells[room][Fold(day)][slot.Start]
	return sess, ok
}

// Occupied (room, day, slot) 是否被占用
func (idx *Index) Occupied(room, day string, slot Slot) bool {
	_, ok := idx.Lookup(room, day, slot)
	return ok
}

// Len 被占用的格子总数
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	n := 0
	for _, byDay := range idx.cells {
		for _, bySlot := range byDay {
			n += len(bySlot)
		}
	}
	return n
}
