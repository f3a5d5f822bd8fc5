package scheduler

// Date and time-of-day values travel through the system as fixed-width
// strings (YYYY-MM-DD and HH:mm) whose lexicographic order matches their
// chronological order. The helpers below validate that shape at the core
// boundary and convert to minutes for duration arithmetic; the comparison
// paths themselves never parse.

// ValidDate reports whether the value is a well-formed YYYY-MM-DD calendar
// date string. Month and day bounds are checked, leap years are not; the
// value is an ordering key, not a civil-calendar computation input.
func ValidDate(value string) bool {
	if len(value) != 10 || value[4] != '-' || value[7] != '-' {
		return false
	}
	for i, c := range []byte(value) {
		if i == 4 || i == 7 {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	month := int(value[5]-'0')*10 + int(value[6]-'0')
	day := int(value[8]-'0')*10 + int(value[9]-'0')
	return month >= 1 && month <= 12 && day >= 1 && day <= 31
}

// ValidTimeOfDay reports whether the value is a well-formed zero-padded
// HH:mm wall-clock string.
func ValidTimeOfDay(value string) bool {
	if len(value) != 5 || value[2] != ':' {
		return false
	}
	for i, c := range []byte(value) {
		if i == 2 {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	hour := int(value[0]-'0')*10 + int(value[1]-'0')
	minute := int(value[3]-'0')*10 + int(value[4]-'0')
	return hour < 24 && minute < 60
}

// MinuteOfDay converts a valid HH:mm string to minutes since midnight.
// The result is unspecified for malformed input; validate first.
func MinuteOfDay(value string) int {
	if len(value) != 5 {
		return 0
	}
	hour := int(value[0]-'0')*10 + int(value[1]-'0')
	minute := int(value[3]-'0')*10 + int(value[4]-'0')
	return hour*60 + minute
}

// DurationMinutes returns the length of the [start, end) window in minutes.
func DurationMinutes(start, end string) int {
	return MinuteOfDay(end) - MinuteOfDay(start)
}
