package graph

// This file contains typed decoding helpers for Cypher result rows.

// stringField extracts a string field from a result row. Missing keys and
// null values are a MissingFieldError, not an empty string, so decode
// failures surface instead of producing blank courses.
func stringField(row map[string]any, key string) (string, error) {
	v, ok := row[key]
	if !ok || v == nil {
		return "", &MissingFieldError{Field: key}
	}
	s, ok := v.(string)
	if !ok {
		return "", &MissingFieldError{Field: key}
	}
	return s, nil
}

// optionalString extracts a string field, treating missing/null as "".
func optionalString(row map[string]any, key string) string {
	s, _ := row[key].(string)
	return s
}

// optionalInt extracts a numeric field, treating missing/null as 0.
// Neo4j integers arrive as int64.
func optionalInt(row map[string]any, key string) int {
	switch n := row[key].(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}

// stringList extracts a list of strings, skipping non-string elements.
func stringList(row map[string]any, key string) []string {
	raw, ok := row[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func decodeCourse(row map[string]any) (Course, error) {
	code, err := stringField(row, "code")
	if err != nil {
		return Course{}, err
	}
	return Course{
		Code:        code,
		Title:       optionalString(row, "title"),
		Credits:     optionalInt(row, "credits"),
		Level:       optionalInt(row, "level"),
		Description: optionalString(row, "description"),
	}, nil
}

func decodePrerequisite(row map[string]any) (Prerequisite, error) {
	code, err := stringField(row, "prereq_code")
	if err != nil {
		return Prerequisite{}, err
	}
	return Prerequisite{
		Code:        code,
		Title:       optionalString(row, "prereq_title"),
		Description: optionalString(row, "prereq_description"),
		GroupType:   ParseGroupType(row["group_type"]),
		Recommended: ParseRecommended(row["recommended"]),
	}, nil
}

func decodeCourseRef(row map[string]any) (CourseRef, error) {
	code, err := stringField(row, "code")
	if err != nil {
		return CourseRef{}, err
	}
	return CourseRef{
		Code:  code,
		Title: optionalString(row, "title"),
	}, nil
}

func decodeCatalogEntry(row map[string]any) (CatalogEntry, error) {
	course, err := decodeCourse(row)
	if err != nil {
		return CatalogEntry{}, err
	}
	return CatalogEntry{
		Course:      course,
		PrereqCodes: stringList(row, "prereq_codes"),
	}, nil
}
