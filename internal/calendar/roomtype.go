package calendar

import "strings"

// roomTypeRule is one row of the §4.1 room-type compatibility policy: a
// course-subject keyword and the room types acceptable for it.
type roomTypeRule struct {
	keyword string
	types   []string
}

// roomTypeTable is consulted in order; the first matching keyword wins.
// "default" always matches last.
var roomTypeTable = []roomTypeRule{
	{"science", []string{"SCIENCE_LAB", "LAB", "STANDARD_CLASSROOM"}},
	{"chemistry", []string{"SCIENCE_LAB", "LAB", "STANDARD_CLASSROOM"}},
	{"physics", []string{"SCIENCE_LAB", "LAB", "STANDARD_CLASSROOM"}},
	{"biology", []string{"SCIENCE_LAB", "LAB", "STANDARD_CLASSROOM"}},
	{"computer", []string{"COMPUTER_LAB", "LAB"}},
	{"technology", []string{"COMPUTER_LAB", "LAB"}},
	{"programming", []string{"COMPUTER_LAB", "LAB"}},
	{"art", []string{"ART_STUDIO", "STANDARD_CLASSROOM"}},
	{"drawing", []string{"ART_STUDIO", "STANDARD_CLASSROOM"}},
	{"painting", []string{"ART_STUDIO", "STANDARD_CLASSROOM"}},
	{"music", []string{"MUSIC_ROOM", "BAND_ROOM", "CHORUS_ROOM", "AUDITORIUM"}},
	{"band", []string{"MUSIC_ROOM", "BAND_ROOM", "CHORUS_ROOM", "AUDITORIUM"}},
	{"choir", []string{"MUSIC_ROOM", "BAND_ROOM", "CHORUS_ROOM", "AUDITORIUM"}},
	{"orchestra", []string{"MUSIC_ROOM", "BAND_ROOM", "CHORUS_ROOM", "AUDITORIUM"}},
	{"physical education", []string{"GYMNASIUM"}},
	{"pe", []string{"GYMNASIUM"}},
	{"gym", []string{"GYMNASIUM"}},
}

// anyRoomType is the sentinel meaning "default: any room type accepted",
// per the §4.1 table's "default" row ("STANDARD_CLASSROOM or any").
const anyRoomType = "*"

// CompatibleRoomTypes returns the acceptable room-type set for a course
// subject, matching keywords case-insensitively by substring. Subjects
// matching no keyword fall back to the default row: STANDARD_CLASSROOM is
// always acceptable, and any room-type is tolerated (soft default, not a
// hard requirement).
func CompatibleRoomTypes(subject string) []string {
	needle := strings.ToLower(strings.TrimSpace(subject))
	for _, rule := range roomTypeTable {
		if strings.Contains(needle, rule.keyword) {
			out := make([]string, len(rule.types))
			copy(out, rule.types)
			return out
		}
	}
	return []string{"STANDARD_CLASSROOM", anyRoomType}
}

// IsRoomTypeCompatible reports whether roomType satisfies the policy table
// for the given course subject.
func IsRoomTypeCompatible(subject, roomType string) bool {
	acceptable := CompatibleRoomTypes(subject)
	needle := strings.ToUpper(strings.TrimSpace(roomType))
	for _, t := range acceptable {
		if t == anyRoomType {
			return true
		}
		if strings.ToUpper(t) == needle {
			return true
		}
	}
	return false
}
