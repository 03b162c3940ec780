package schedule

const (
	// FirstHour 网格起始整点
	FirstHour = 7
	// LastHour 网格结束整点（不含）
	LastHour = 21
)

// Weekdays 固定星期集合（闭枚举），顺序即网格列顺序
var Weekdays = []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes"}

// Slot 网格中的一小时时段 [Start, End)
type Slot struct {
	Start Clock
	End   Clock
}

// Label 时段起点 HH:MM，作为网格索引键
func (s Slot) Label() string { return s.Start.String() }

// Range 形如 "07:00 - 08:00"
func (s Slot) Range() string { return s.Start.String() + " - " + s.End.String() }

// Slots 返回共享的 07:00–21:00 时段序列（共 14 个）
func Slots() []Slot {
	slots := make([]Slot, 0, LastHour-FirstHour)
	for h := FirstHour; h < LastHour; h++ {
		slots = append(slots, Slot{Start: Clock(h * 60), End: Clock((h + 1) * 60)})
	}
	return slots
}

// HourBoundaries 07:00 … 21:00（含两端），课程起止时间的可选值
func HourBoundaries() []string {
	out := make([]string, 0, LastHour-FirstHour+1)
	for h := FirstHour; h <= LastHour; h++ {
		out = append(out, Clock(h*60).String())
	}
	return out
}

// OnGrid s 是否为 HourBoundaries 之一
func OnGrid(s string) bool {
	c, err := ParseClock(s)
	if err != nil {
		return false
	}
	return c%60 == 0 && c >= Clock(FirstHour*60) && c <= Clock(LastHour*60)
}

// CanonicalDay 将大小写/重音变体（如 "miercoles"）映射回 Weekdays 中的标准名称
func CanonicalDay(day string) (string, bool) {
	key := Fold(day)
	for _, d := range Weekdays {
		if Fold(d) == key {
			return d, true
		}
	}
	return "", false
}

// covers 时段起点规则：时段起点落在课程 [start, end) 内即视为占用
func covers(sess Session, slot Slot) bool {
	start, end, ok := interval(sess.Start, sess.End)
	if !ok {
		return false
	}
	return start <= slot.Start && slot.Start < end
}
