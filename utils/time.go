package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTimeSlot parses a 12-hour clock slot such as "2:30 PM" into a 24-hour
// hour/minute pair. Noon and midnight follow the 12-hour convention:
// "12:00 PM" is hour 12, "12:00 AM" is hour 0.
func ParseTimeSlot(slot string) (hour, minute int, err error) {
	parts := strings.Fields(strings.TrimSpace(slot))
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid slot format %q, expected \"H:MM AM/PM\"", slot)
	}

	modifier := strings.ToUpper(parts[1])
	if modifier != "AM" && modifier != "PM" {
		return 0, 0, fmt.Errorf("invalid slot modifier %q, expected AM or PM", parts[1])
	}

	hm := strings.Split(parts[0], ":")
	if len(hm) != 2 {
		return 0, 0, fmt.Errorf("invalid slot time %q, expected H:MM", parts[0])
	}

	hour, err = strconv.Atoi(hm[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid slot hour %q", hm[0])
	}
	minute, err = strconv.Atoi(hm[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid slot minute %q", hm[1])
	}
	if hour < 1 || hour > 12 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("slot time %q out of range", parts[0])
	}

	if modifier == "PM" && hour != 12 {
		hour += 12
	} else if modifier == "AM" && hour == 12 {
		hour = 0
	}
	return hour, minute, nil
}
