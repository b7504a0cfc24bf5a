package aggregate

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/noah-isme/el-timetable/internal/models"
)

// First and last hour buckets shown on the weekly grid.
const (
	FirstHour = 8
	LastHour  = 20
)

// Hours lists the grid rows, 08 through 20.
func Hours() []int {
	hours := make([]int, 0, LastHour-FirstHour+1)
	for h := FirstHour; h <= LastHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// HourLabel renders an hour bucket as "HH:00".
func HourLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// Weekdays lists grid columns Monday through Sunday.
func Weekdays() []time.Weekday {
	return []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday}
}

// SlotKey addresses one grid cell.
type SlotKey struct {
	Day  time.Weekday
	Hour int
}

// TeacherGrid is the weekly grid of a single teacher. A cell holds one entry; later sessions overwrite earlier ones.
type TeacherGrid struct {
	TeacherID string
	Name      string
	Nickname  string
	cells     map[SlotKey]string
}

// Cell returns the entry at the slot or an empty string.
func (g TeacherGrid) Cell(day time.Weekday, hour int) string {
	return g.cells[SlotKey{Day: day, Hour: hour}]
}

// Len reports how many cells are filled.
func (g TeacherGrid) Len() int {
	return len(g.cells)
}

// CombinedGrid merges every teacher into one grid. A cell lists all entries ordered by teacher label.
type CombinedGrid struct {
	cells map[SlotKey][]string
}

// Cell returns the entries at the slot.
func (g CombinedGrid) Cell(day time.Weekday, hour int) []string {
	return g.cells[SlotKey{Day: day, Hour: hour}]
}

// WeekDay is a grid column header.
type WeekDay struct {
	Weekday time.Weekday
	Date    time.Time
}

// WeeklyGrid is the view model for the weekly timetable.
type WeeklyGrid struct {
	Start    time.Time
	End      time.Time
	Days     []WeekDay
	Hours    []int
	Teachers []TeacherGrid
	Combined CombinedGrid
}

// Empty reports whether no session landed in the grid.
func (w WeeklyGrid) Empty() bool {
	return len(w.Teachers) == 0
}

// SessionEntry formats the text shown in a grid cell.
func SessionEntry(s models.SessionView) string {
	return fmt.Sprintf("%s - %s (%s)", s.StudentName, s.SubjectName, s.TeacherLabel())
}

// BuildWeeklyGrid files each session under its weekday and start hour. Sessions must already be
// restricted to the week starting at weekStart and ordered by date and start time.
func BuildWeeklyGrid(weekStart time.Time, sessions []models.SessionView) WeeklyGrid {
	grid := WeeklyGrid{
		Start:    weekStart,
		End:      weekStart.AddDate(0, 0, 6),
		Hours:    Hours(),
		Combined: CombinedGrid{cells: make(map[SlotKey][]string)},
	}
	for i, day := range Weekdays() {
		grid.Days = append(grid.Days, WeekDay{Weekday: day, Date: weekStart.AddDate(0, 0, i)})
	}

	index := make(map[string]int)
	for _, s := range sessions {
		key, ok := slotOf(s.ClassSession)
		if !ok {
			continue
		}
		pos, seen := index[s.TeacherID]
		if !seen {
			nickname := ""
			if s.TeacherNickname != nil {
				nickname = *s.TeacherNickname
			}
			grid.Teachers = append(grid.Teachers, TeacherGrid{
				TeacherID: s.TeacherID,
				Name:      s.TeacherName,
				Nickname:  nickname,
				cells:     make(map[SlotKey]string),
			})
			pos = len(grid.Teachers) - 1
			index[s.TeacherID] = pos
		}
		entry := SessionEntry(s)
		grid.Teachers[pos].cells[key] = entry
		grid.Combined.cells[key] = append(grid.Combined.cells[key], entry)
	}

	for key, entries := range grid.Combined.cells {
		sort.SliceStable(entries, func(i, j int) bool {
			return bracketLabel(entries[i]) < bracketLabel(entries[j])
		})
		grid.Combined.cells[key] = entries
	}
	return grid
}

func slotOf(s models.ClassSession) (SlotKey, bool) {
	date, err := s.Date()
	if err != nil {
		return SlotKey{}, false
	}
	start, err := time.Parse(models.ClockLayout, s.StartTime)
	if err != nil {
		return SlotKey{}, false
	}
	hour := start.Hour()
	if hour < FirstHour || hour > LastHour {
		return SlotKey{}, false
	}
	return SlotKey{Day: date.Weekday(), Hour: hour}, true
}

// bracketLabel extracts the text between the last "(" and the trailing ")".
func bracketLabel(entry string) string {
	idx := strings.LastIndex(entry, "(")
	if idx < 0 {
		return entry
	}
	return strings.TrimSuffix(entry[idx+1:], ")")
}
