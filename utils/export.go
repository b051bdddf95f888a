package utils

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"kasif-platform/models"
)

// StudentsCSV renders a flat snapshot of the student collection.
func StudentsCSV(students []models.Student) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"name", "username", "class_code", "group", "status", "points", "namaz_points", "badges", "parent_phone", "school"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, s := range students {
		row := []string{
			s.Name,
			s.Username,
			s.ClassCode,
			s.Group,
			string(s.Status),
			strconv.FormatInt(s.Points, 10),
			strconv.FormatInt(s.NamazPoints, 10),
			strings.Join(s.Badges, " - "),
			s.ParentPhone,
			s.School,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// InstructorsCSV renders a flat snapshot of the instructor collection.
func InstructorsCSV(instructors []models.Instructor) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"name", "username", "class_codes"}); err != nil {
		return nil, err
	}
	for _, i := range instructors {
		if err := w.Write([]string{i.Name, i.Username, strings.Join(i.ClassCodes, " - ")}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// SnapshotKey builds a dated object key for an export upload.
func SnapshotKey(collection string) string {
	return fmt.Sprintf("exports/%s-%s.csv", collection, time.Now().Format("2006-01-02"))
}
