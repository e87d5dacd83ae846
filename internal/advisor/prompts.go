package advisor

// This file contains the prompt templates for the response handlers.
// Factual content always comes from the graph; these prompts only shape
// phrasing around it.

import (
	"fmt"
	"strings"

	"github.com/coursecompass/advisor-go/internal/graph"
	"github.com/coursecompass/advisor-go/internal/stringutil"
)

func smalltalkPrompt(question string) string {
	return fmt.Sprintf(
		"Respond warmly and politely to this greeting. You are a helpful university academic advisor called CourseCompass: %s",
		question,
	)
}

func generalPrompt(question, catalogDigest string) string {
	return fmt.Sprintf(`You are a knowledgeable academic assistant called CourseCompass who can answer general student questions.
Use the context below only if it helps; otherwise, answer using your own understanding.
Stay concise (2-4 sentences) and conversational. Use the description of courses if relevant.

Student's question: %q

University Course Graph (for reference) but do not mention that you use this graph:
%s

Assistant:`, question, catalogDigest)
}

func advisingPrompt(question, catalogDigest string) string {
	return fmt.Sprintf(`You are a friendly academic advisor at a university.
The student is asking for advice about which courses to take.
Use the provided course catalog below as real reference material,
but only include details that are relevant to the question.
Keep your answer friendly, clear, and personalized (3-5 sentences).

Student's question: %q

Course Catalog (context):
%s

Advisor:`, question, catalogDigest)
}

func prereqSummaryPrompt(target graph.Course) string {
	return fmt.Sprintf(`You are an academic advisor.
Provide ONE short factual sentence (under 25 words)
summarizing how these courses prepare a student for %s (%s).

Do not restate the course codes.
Just describe the general skills or foundation gained.`, target.Code, target.Title)
}

func nextCoursesPrompt(question, code, joined string) string {
	if question == "" {
		question = fmt.Sprintf("What can I take after %s?", code)
	}
	return fmt.Sprintf(`You are a helpful university academic advisor.
Student asked: %q

Here is what the database says:
Course: %s
Next possible courses (that require it):
%s

Respond conversationally in 2-4 sentences:
- Accurately reflect the factual context (these are the verified next courses).
- Briefly explain how these follow-up courses build on the knowledge from %s.
- Keep the tone warm, helpful, and concise.`, question, code, joined, code)
}

func courseInfoPrompt(question, factualContext string) string {
	return fmt.Sprintf(`You are a friendly university advisor.
A student asked: %q

Here is the factual information from the university database:
%s

Now, summarize this naturally in a conversational tone (3-5 sentences).
If possible, mention what the course prepares students for or what comes next.
Avoid repeating the raw data directly; make it sound helpful and engaging.`, question, factualContext)
}

// maxFactSheetDescription bounds how much of a course description goes
// into the prompt context.
const maxFactSheetDescription = 600

// courseFactSheet renders the deterministic facts passed to the course_info
// prompt and reused by its templated fallback.
func courseFactSheet(c graph.Course, prereqCodes, nextCodes []string) string {
	desc := stringutil.Truncate(c.Description, maxFactSheetDescription)
	if desc == "" {
		desc = "No description available."
	}
	return fmt.Sprintf(`Course Code: %s
Title: %s
Credits: %d
Level: %d
Description: %s
Prerequisites: %s
Next Courses: %s`,
		c.Code, c.Title, c.Credits, c.Level, desc,
		codeListOrNone(prereqCodes), codeListOrNone(nextCodes))
}

func codeListOrNone(codes []string) string {
	if len(codes) == 0 {
		return "None"
	}
	return strings.Join(codes, ", ")
}

// joinCourseRefs renders "CODE - Title" entries as a natural-language list.
func joinCourseRefs(refs []graph.CourseRef) string {
	labels := make([]string, 0, len(refs))
	for _, r := range refs {
		if r.Code == "" {
			continue
		}
		label := r.Code
		if r.Title != "" {
			label = fmt.Sprintf("%s - %s", r.Code, r.Title)
		}
		labels = append(labels, label)
	}
	return stringutil.JoinNatural(labels)
}
