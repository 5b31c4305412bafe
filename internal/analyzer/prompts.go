package analyzer

import (
	"fmt"
	"strings"
)

// Prompt constructors. Each returns a (system, user) pair for one LLM
// operation. All JSON-returning prompts instruct the model to emit a
// bare JSON object; the recovery layer handles the cases where it
// doesn't listen.

const analysisSystemPrompt = `You are a highly experienced Resume Analyst with over 15 years in talent acquisition, career development, and ATS optimization.

OBJECTIVE:
You must analyze a resume against a specific job description and role. Return *only* a strictly valid JSON object summarizing the analysis.

RESTRICTIONS:
- Do NOT include explanations, markdown, comments, or natural language outside the JSON.
- Do NOT wrap JSON in code blocks or add any leading/trailing text.
- Your response MUST start with { and end with }. Return JSON only.

REQUIRED OUTPUT FORMAT (JSON):
{
  "overall_strengths": [
    { "description": "Clearly stated strength backed by evidence", "weightage": 85 },
    { "description": "Another unique strength with measurable value", "weightage": 78 }
  ],
  "areas_for_improvement": [
    { "description": "Specific aspect where the resume lacks", "weightage": 70 },
    { "description": "Another improvement area with explanation", "weightage": 65 }
  ],
  "ats_optimization_suggestions": [
    { "description": "Precise ATS improvement idea", "weightage": 80 },
    { "description": "Another actionable ATS fix", "weightage": 75 }
  ],
  "job_fit_assessment": {
    "score": 82,
    "notes": "Critical evaluation of alignment with job requirements and potential growth"
  },
  "recommendation_score": 82,
  "resume_summary": "Concise and compelling 2-3 sentence summary of the candidate's profile and fit for the role.",
  "matched_skills": ["react", "python"],
  "missing_skills": ["typescript", "cloud"]
}

EVALUATION GUIDELINES:
1. Depth of role-specific skills and technologies
2. Measurable achievements (quantified where possible)
3. Career growth and progression indicators
4. ATS-friendliness, keyword richness, formatting quality
5. Overall presentation, clarity, and professionalism`

func analysisPrompt(text, targetRole, jobDescription string) (string, string) {
	jd := jobDescription
	if jd == "" {
		jd = "No specific JD provided - perform general analysis based on industry norms."
	}
	user := fmt.Sprintf(`- Analyze the following resume for its suitability for the role below and provide your analysis in the defined JSON structure only.

TARGET ROLE:
%s

JOB DESCRIPTION:
%s

RESUME CONTENT:
%s

Follow the evaluation criteria strictly and return only the JSON object as instructed.`, targetRole, jd, text)
	return analysisSystemPrompt, user
}

const scoringSystemPrompt = `You are an expert resume evaluator specializing in ATS scoring and resume assessment.

Your task is to rate resumes out of 100 based on the following criteria:
- Relevance to the target role
- Clarity and readability
- ATS-friendliness
- Impact and achievements
- Completeness

RESPONSE FORMAT:
Respond only with a JSON object containing the following keys:
{
    "ats_score": "ats score of the resume",
    "format_compliance": "Formatting score of the resume",
    "keyword_optimization": "Scoring of the resume based on keywords",
    "readability": "Readability score of the resume"
}

NOTE: Only output in JSON format, don't give anything apart from the JSON object.`

func scoringPrompt(text, targetRole, jobDescription string) (string, string) {
	jd := jobDescription
	if jd == "" {
		jd = "General evaluation"
	}
	user := fmt.Sprintf(`Please rate this resume out of 100 for the following role:

TARGET ROLE: %s

JOB DESCRIPTION: %s

RESUME CONTENT:
%s

Provide your assessment in the specified JSON format.`, targetRole, jd, text)
	return scoringSystemPrompt, user
}

const improvementSystemPrompt = `You are an expert resume writer specializing in optimizing resume sections for maximum impact.

Your task is to improve resume sections to make them:
- More impactful and results-oriented
- ATS-friendly with relevant keywords
- Tailored to specific roles
- Professional and compelling

Focus on enhancing the content while maintaining authenticity.`

func improvementPrompt(sectionText, sectionName, targetRole, jobDescription string) (string, string) {
	jd := jobDescription
	if jd == "" {
		jd = "General improvement"
	} else if len(jd) > 300 {
		jd = jd[:300]
	}
	user := fmt.Sprintf(`Please improve this %s section for the specified role:

TARGET ROLE: %s

JOB DESCRIPTION: %s

ORIGINAL %s SECTION:
%s

- Provide an improved version of this section that is more impactful, ATS-friendly, and relevant to the target role.`,
		sectionName, targetRole, jd, strings.ToUpper(sectionName), sectionText)
	return improvementSystemPrompt, user
}

const generationSystemPrompt = `You are an expert resume writer specializing in creating professional, ATS-optimized resumes.

Your task is to create complete, well-structured resumes that include:
- Professional Summary
- Core Skills
- Work Experience (if available)
- Education
- Projects
- Achievements

Format requirements:
- Use clear sections and bullet points
- Ensure ATS compatibility
- Include relevant keywords
- Maintain professional formatting
- Focus on quantifiable achievements`

func generationPrompt(sectionsSummary, targetRole, jobDescription string) (string, string) {
	jd := jobDescription
	if jd == "" {
		jd = "General requirements"
	} else if len(jd) > 400 {
		jd = jd[:400]
	}
	user := fmt.Sprintf(`Please create a professional, ATS-optimized resume for the following role:

TARGET ROLE: %s

JOB REQUIREMENTS: %s

CURRENT RESUME SECTIONS:
%s

Generate a complete, well-structured resume based on the provided information.`, targetRole, jd, sectionsSummary)
	return generationSystemPrompt, user
}

const careerSuggestionSystemPrompt = `You are an expert career mentor with extensive experience in career guidance and skill assessment.

- Your task is to provide career suggestions based on skill scores and overall performance. You need to analyze the data and provide:

1. Role suggestions with match percentages
2. Candidate strengths and reasons
3. Improvement areas with specific recommendations
4. Tips for resume enhancement

RESPONSE FORMAT:
{
    "suggestions": [
        {
            "role_name": "Name of the role",
            "match_percent": "Match percent with the provided role"
        }
    ],
    "strengths": [
        {
            "skill": "Name of the skill where candidate is good",
            "strength_point": "Reason why candidate is strong"
        }
    ],
    "improvement_areas": [
        {
          "skill": "Name of the skill where candidate needs improvement",
          "improvement_point": "What improvement does the candidate need in this skill"
        }
    ],
    "tips": [
        "tip-1",
        "tip-2",
        "tip-3"
    ]
}

NOTE: Only return JSON object and nothing else.`

func careerSuggestionPrompt(skillScores []SkillScore, overallScore float64) (string, string) {
	var scores strings.Builder
	for i, s := range skillScores {
		if i > 0 {
			scores.WriteString(", ")
		}
		if s.Score == nil {
			fmt.Fprintf(&scores, "%s: not attempted", s.Skill)
		} else {
			fmt.Fprintf(&scores, "%s: %.2f", s.Skill, *s.Score)
		}
	}
	user := fmt.Sprintf(`Based on the following skill assessment data, provide career suggestions:

SKILL SCORES: %s

OVERALL SCORE: %.2f

Analyze this data and provide role suggestions, strengths, improvement areas, and tips in the specified JSON format.`,
		scores.String(), overallScore)
	return careerSuggestionSystemPrompt, user
}

const sectionSystemPrompt = `You are a professional resume evaluation expert specializing in section-by-section analysis.

- Your task is to analyze resume sections and provide detailed feedback for each section including:
- Brief description of the section
- Good points
- Areas needing improvement
- Specific improvement suggestions
- Overall review rating

RESPONSE FORMAT:
Return ONLY a valid JSON object with this exact structure:
{
    "education": {
        "description": "small description of that section in one or two lines",
        "good": ["point 1", "point 2"],
        "bad": ["point 1", "point 2"],
        "improvements": ["point 1", "point 2"],
        "overall_review": "Excellent" or "Good" or "Needs Improvement"
    },
    "projects": { ...same structure... },
    "experience": { ...same structure... },
    "skills": { ...same structure... },
    "extracurricular": { ...same structure... }
}

IMPORTANT:
- Use natural, conversational sentences for each point
- Every section must be present, even if empty arrays are needed
- If a section is not found, set arrays to [] and overall_review to "Needs Improvement"
- Return ONLY the JSON object, no explanations`

func sectionPrompt(text, targetRole, jobDescription string) (string, string) {
	jd := jobDescription
	if jd == "" {
		jd = "No specific job description provided"
	}
	user := fmt.Sprintf(`Please analyze the following resume sections for the specified role:

TARGET ROLE: %s

JOB DESCRIPTION: %s

RESUME TEXT:
%s

Provide a detailed section-by-section analysis in the specified JSON format.`, targetRole, jd, text)
	return sectionSystemPrompt, user
}

const skillAssessmentSystemPrompt = `You are an expert assessment generator specializing in creating comprehensive skill evaluations.

- Your task is to generate 10 multiple choice questions that test understanding and practical knowledge of both technical and soft skills.

Requirements for each question:
- 1 clear correct answer
- 3 plausible but incorrect distractors
- Good mix of conceptual and scenario-based questions
- Coverage across both technical and soft skills

RESPONSE FORMAT:
{
  "questions": [
    {
      "question": "Question text here?",
      "options": [
        "A. Option one",
        "B. Option two",
        "C. Option three",
        "D. Option four"
      ],
      "answer": "A",
      "topic": "Topic of the question (single skill name)"
    }
  ]
}

- Do not include any explanations, comments, or markdown. Output only the pure JSON object.`

func skillAssessmentPrompt(technicalSkills, softSkills string) (string, string) {
	user := fmt.Sprintf(`Generate 10 multiple choice questions based on the following skills:

TECHNICAL SKILLS: %s

SOFT SKILLS: %s

- Create questions that test both theoretical knowledge and practical application of these skills.
- Return the assessment in the specified JSON format.`, technicalSkills, softSkills)
	return skillAssessmentSystemPrompt, user
}

// bulletContract is shared by the three bullet-enhancement prompts.
const bulletContract = `RESPONSE FORMAT:
Return ONLY a valid JSON object with this exact structure:
{
  "bullet_points": [
    "First enhanced bullet point",
    "Second enhanced bullet point"
  ]
}

- Do not include any markdown, labels, prefixes, or text outside the JSON object.`

func projectBulletPrompt(projectName, techStack string, points []string) (string, string) {
	n := bulletCount(points)
	system := fmt.Sprintf(`You are a technical resume writer specializing in project portfolio presentation.

Your task is to create exactly %d enhanced technical bullet point(s) that demonstrate:

1. Technical proficiency and problem-solving
2. Innovative solutions and methodologies
3. Project impact and user value
4. Collaboration and technical leadership
5. Relevant metrics and outcomes

Requirements:
- Lead with technical achievements and innovations
- Quantify user impact, performance improvements, or scale
- Highlight complex problem-solving and technical decisions
- Focus on technical depth and business impact

%s`, n, bulletContract)
	user := fmt.Sprintf(`Please enhance the following project information:

PROJECT NAME: %s
TECHNOLOGIES: %s
CURRENT POINTS: %s

Generate exactly %d enhanced technical bullet point(s) that showcase technical expertise and project impact.`,
		projectName, techStack, formatPoints(points), n)
	return system, user
}

func experienceBulletPrompt(organisation, position, location string, points []string) (string, string) {
	n := bulletCount(points)
	system := fmt.Sprintf(`You are a resume writing assistant specializing in creating strong professional experience descriptions.

Your task is to generate exactly %d impactful bullet point(s) for a work experience entry.

Requirements:
- Write in third person and keep it resume-appropriate
- Focus on achievements and quantifiable results
- Use action verbs and professional language

%s`, n, bulletContract)
	user := fmt.Sprintf(`Please generate professional experience bullet points for:

ORGANISATION: %s
POSITION: %s
LOCATION: %s
EXISTING POINTS: %s

Create exactly %d enhanced bullet point(s) that highlight achievements and impact.`,
		organisation, position, location, formatPoints(points), n)
	return system, user
}

func extracurricularBulletPrompt(organisation, position, location string, points []string) (string, string) {
	n := bulletCount(points)
	system := fmt.Sprintf(`You are a resume writing assistant specializing in presenting extracurricular activities professionally.

Your task is to generate exactly %d bullet point(s) for an extracurricular activity.

Requirements:
- Write in third person, past tense
- Make it resume-appropriate and impactful
- Keep each point concise and professional

%s`, n, bulletContract)
	user := fmt.Sprintf(`Please generate professional extracurricular activity bullet points for:

ORGANISATION: %s
POSITION: %s
LOCATION: %s
EXISTING BULLET POINTS: %s

Create exactly %d enhanced bullet point(s) that showcase leadership, impact, and skills developed.`,
		organisation, position, location, formatPoints(points), n)
	return system, user
}

func bulletCount(points []string) int {
	if len(points) == 0 {
		return 1
	}
	return len(points)
}

func formatPoints(points []string) string {
	if len(points) == 0 {
		return "None provided. You must create from scratch."
	}
	return "- " + strings.Join(points, "\n- ")
}

const parserSystemPrompt = `You are an expert resume parser specializing in extracting structured data from resumes.

- Your task is to extract resume information and format it as a JSON object with the following structure:

{
  "resume_details": {
    "personal_info": {
      "name": "candidate full name",
      "contact_info": {
        "email": "email address",
        "mobile": "phone number",
        "location": "city, state/country",
        "social_links": {
          "linkedin": "linkedin profile url",
          "github": "github profile url",
          "portfolio": "portfolio website url"
        }
      },
      "professional_summary": "professional summary or objective"
    },
    "educations": [
      {
        "institute_name": "university/college name",
        "degree": "degree type",
        "specialisation": "field of study",
        "dates": { "start": "start date", "end": "end date or 'Present'" },
        "location": "institute location",
        "gpa": "GPA/percentage if mentioned",
        "relevant_coursework": ["course1", "course2"]
      }
    ],
    "work_experiences": [
      {
        "company_name": "company name",
        "job_title": "position title",
        "date": { "start": "start date", "end": "end date or 'Present'" },
        "location": "work location",
        "bullet_points": ["responsibility 1", "responsibility 2"]
      }
    ],
    "projects": [
      {
        "title": "project name",
        "project_link": "project url if available",
        "date": { "start": "start date", "end": "end date" },
        "location": "project location if applicable",
        "organization": "associated organization if any",
        "bullet_points": ["key point 1", "key point 2"],
        "technologies_used": ["tech1", "tech2"]
      }
    ],
    "technical_skills": [
      { "skill_group": "Programming Languages", "skills": ["Python", "Java"] }
    ],
    "soft_skills": [
      { "skill_group": "Leadership", "skills": ["mentoring", "delegation"] }
    ],
    "achievements": [
      {
        "title": "achievement title",
        "description": "achievement description",
        "date_achieved": "date of achievement or null",
        "organization": "awarding organization or null"
      }
    ],
    "certifications": [
      {
        "certificate_name": "certification name",
        "issuing_organization": "issuing body",
        "date_issued": "issue date or null",
        "expiry_date": "expiry date or null",
        "description": "certification description"
      }
    ],
    "languages": [
      { "language": "language name", "proficiency": "proficiency level" }
    ],
    "publications": [
      {
        "publication_name": "publication title",
        "authors": ["author1", "author2"],
        "publication_date": "publication date",
        "journal_conference": "journal or conference name",
        "description": "brief description"
      }
    ],
    "extracurriculars": [
      {
        "title": "activity title",
        "organization_name": "organization name",
        "role": "role/position held",
        "date": { "start": "start date", "end": "end date" },
        "bullet_points": ["activity detail 1", "activity detail 2"],
        "certificate": "certificate link or null",
        "location": "activity location"
      }
    ]
  }
}

PARSING RULES:
1. Extract information ONLY if explicitly mentioned in the resume
2. For missing array/list fields (like certifications, achievements, languages, etc.), use EMPTY ARRAYS [] - do NOT create objects with null values
3. Use empty strings "" for missing string fields
4. Use null for missing object fields
5. Preserve original date formats when possible
6. Group skills logically by category
7. Include all bullet points as separate array elements
8. Extract URLs exactly as written

CRITICAL INSTRUCTIONS:
- If NO certifications are found, return: "certifications": []
- If NO achievements are found, return: "achievements": []
- If NO languages are found, return: "languages": []
- If NO publications are found, return: "publications": []
- DO NOT create placeholder objects with null values for missing data
- Only include actual data that exists in the resume

CRITICAL: Return ONLY the JSON object. No explanations, no markdown, no additional text.`

func parserPrompt(text string) (string, string) {
	user := fmt.Sprintf(`Please extract and structure the following resume data:

RESUME TEXT:
%s

Parse this resume and return the structured data in the specified JSON format.
Remember: use empty arrays [] for missing list data, not objects with null values.`, text)
	return parserSystemPrompt, user
}

const structuredATSSystemPrompt = `You are an advanced Applicant Tracking System (ATS) evaluator specializing in resume assessment.

Your task is to evaluate resumes based on 3 key criteria:

1. **Format Compliance** (30%):
   - Document structure and parseability
   - Section organization and hierarchy
   - Font consistency and readability
   - ATS-friendly formatting practices

2. **Keyword Optimization** (40%):
   - Industry-specific terminology density
   - Technical skill keyword matching
   - Action verb usage and variety
   - Role-relevant language patterns

3. **Readability & Clarity** (30%):
   - Information clarity and flow
   - Quantified achievement presentation
   - Professional language quality
   - Logical content organization

For each category, provide a score out of 100, followed by an overall ATS Score (weighted).

RESPONSE FORMAT:
{
    "ats_score": "Overall ATS score in float",
    "format_compliance": "Format compliance score in float",
    "keyword_optimization": "Keyword optimization score in float",
    "readability": "Readability score in float"
}

Assume the resume is written in clean and ATS-compatible LaTeX format.`

func structuredATSPrompt(details ResumeDetails) (string, string) {
	name := "N/A"
	summary := "N/A"
	var links []string
	if details.PersonalInfo != nil {
		if details.PersonalInfo.Name != "" {
			name = details.PersonalInfo.Name
		}
		if details.PersonalInfo.ProfessionalSummary != "" {
			summary = details.PersonalInfo.ProfessionalSummary
		}
		sl := details.PersonalInfo.ContactInfo.SocialLinks
		if sl.LinkedIn != "" {
			links = append(links, "linkedin: "+sl.LinkedIn)
		}
		if sl.GitHub != "" {
			links = append(links, "github: "+sl.GitHub)
		}
		if sl.Portfolio != "" {
			links = append(links, "portfolio: "+sl.Portfolio)
		}
	}

	var skills []string
	for _, group := range details.TechnicalSkills {
		skills = append(skills, group.Skills...)
	}
	for _, group := range details.SoftSkills {
		skills = append(skills, group.Skills...)
	}

	var projects []string
	for _, proj := range details.Projects {
		var b strings.Builder
		fmt.Fprintf(&b, "Title: %s\nTech: %s\nHighlights:\n", proj.Title, strings.Join(proj.TechnologiesUsed, ", "))
		for _, bp := range proj.BulletPoints {
			fmt.Fprintf(&b, "  - %s\n", bp)
		}
		projects = append(projects, strings.TrimRight(b.String(), "\n"))
	}

	var educations []string
	for _, edu := range details.Educations {
		gpa := edu.GPA
		if gpa == "" {
			gpa = "N/A"
		}
		educations = append(educations, fmt.Sprintf("%s - %s (%s)", edu.InstituteName, edu.Degree, gpa))
	}

	var achievements []string
	for _, ach := range details.Achievements {
		achievements = append(achievements, fmt.Sprintf("%s: %s", ach.Title, ach.Description))
	}

	var extras []string
	for _, extra := range details.Extracurriculars {
		var b strings.Builder
		fmt.Fprintf(&b, "%s (%s):\n", extra.Title, extra.Role)
		for _, bp := range extra.BulletPoints {
			fmt.Fprintf(&b, "  - %s\n", bp)
		}
		extras = append(extras, strings.TrimRight(b.String(), "\n"))
	}

	var languages []string
	for _, lang := range details.Languages {
		if lang.Language != "" {
			languages = append(languages, fmt.Sprintf("%s (%s)", lang.Language, lang.Proficiency))
		}
	}

	user := fmt.Sprintf(`Please evaluate the following resume for ATS compatibility:

**Name**: %s

**Professional Summary**:
%s

**Skills**:
%s

**Languages Spoken**:
%s

**Social Links**:
%s

**Projects**:
%s

**Education**:
%s

**Achievements**:
%s

**Extracurriculars**:
%s

Provide your ATS evaluation in the specified JSON format.`,
		name, summary,
		orDefault(strings.Join(skills, ", "), "None listed"),
		orDefault(strings.Join(languages, ", "), "Not specified"),
		orDefault(strings.Join(links, ", "), "None"),
		orDefault(strings.Join(projects, "\n"), "No projects provided"),
		orDefault(strings.Join(educations, "\n"), "No education history provided"),
		orDefault(strings.Join(achievements, "\n"), "No achievements listed"),
		orDefault(strings.Join(extras, "\n"), "None"))
	return structuredATSSystemPrompt, user
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
