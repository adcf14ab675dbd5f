package validate

import "time"

const ISODateLayout = "2006-01-02"

func IsISODate(s string) bool {
	if len(s) != len(ISODateLayout) {
		return false
	}
	_, err := time.Parse(ISODateLayout, s)
	return err == nil
}
