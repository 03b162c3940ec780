package schedule

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrMalformedTime 时间字符串不是 HH:MM（24 小时制）
var ErrMalformedTime = errors.New("malformed time, expected HH:MM")

// Clock 自午夜起的分钟数
type Clock int

// ParseClock 严格解析 "HH:MM"（24 小时制）
func ParseClock(s string) (Clock, error) {
	if len(s) != 5 || s[2] != ':' || !isDigit(s[0]) || !isDigit(s[1]) || !isDigit(s[3]) || !isDigit(s[4]) {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	h, err := strconv.Atoi(s[:2])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	m, err := strconv.Atoi(s[3:])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	return Clock(h*60 + m), nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// String 格式化为 HH:MM
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// interval 解析半开区间 [start, end)；任一端格式错误或 start >= end 时 ok=false
func interval(start, end string) (Clock, Clock, bool) {
	a, err := ParseClock(start)
	if err != nil {
		return 0, 0, false
	}
	b, err := ParseClock(end)
	if err != nil {
		return 0, 0, false
	}
	if a >= b {
		return 0, 0, false
	}
	return a, b, true
}
