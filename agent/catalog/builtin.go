package catalog

import contractx "github.com/tanpawarit/career-handoff/agent/contract"

var builtinRoles = []Role{
	{Name: "data analyst", Skills: []string{"SQL", "Python", "Pandas", "Data Visualization", "Statistics"}},
	{Name: "web developer", Skills: []string{"HTML", "CSS", "JavaScript", "React", "Node.js"}},
}

var builtinJobs = []contractx.JobListing{
	{Title: "Data Analyst", Company: "TechCorp", Location: "New York", Requirements: []string{"SQL", "Python", "Data Visualization"}},
	{Title: "Web Developer", Company: "Webify", Location: "San Francisco", Requirements: []string{"HTML", "CSS", "JavaScript"}},
	{Title: "Backend Developer", Company: "CloudNet", Location: "Remote", Requirements: []string{"Python", "Node.js", "APIs"}},
	{Title: "Data Scientist", Company: "DataGen", Location: "Boston", Requirements: []string{"Python", "Pandas", "Machine Learning"}},
}

var builtinCourses = []SkillCourses{
	{Skill: "SQL", Courses: []Course{{Title: "SQL for Data Science", Platform: "Coursera", Link: "https://www.coursera.org/learn/sql-for-data-science"}}},
	{Skill: "Python", Courses: []Course{{Title: "Python Basics", Platform: "edX", Link: "https://www.edx.org/course/python-basics"}}},
	{Skill: "Pandas", Courses: []Course{{Title: "Data Analysis with Pandas", Platform: "Udemy", Link: "https://www.udemy.com/course/data-analysis-with-pandas/"}}},
	{Skill: "Data Visualization", Courses: []Course{{Title: "Data Visualization with Python", Platform: "Coursera", Link: "https://www.coursera.org/learn/python-for-data-visualization"}}},
	{Skill: "Statistics", Courses: []Course{{Title: "Statistics with Python", Platform: "Coursera", Link: "https://www.coursera.org/specializations/statistics-with-python"}}},
	{Skill: "HTML", Courses: []Course{{Title: "HTML Fundamentals", Platform: "Codecademy", Link: "https://www.codecademy.com/learn/learn-html"}}},
	{Skill: "CSS", Courses: []Course{{Title: "CSS Basics", Platform: "Udemy", Link: "https://www.udemy.com/course/css-the-complete-guide-incl-flexbox-grid-sass/"}}},
	{Skill: "JavaScript", Courses: []Course{{Title: "JavaScript Essentials", Platform: "Coursera", Link: "https://www.coursera.org/learn/javascript"}}},
	{Skill: "React", Courses: []Course{{Title: "React - The Complete Guide", Platform: "Udemy", Link: "https://www.udemy.com/course/react-the-complete-guide-incl-redux/"}}},
	{Skill: "Node.js", Courses: []Course{{Title: "Node.js Basics", Platform: "edX", Link: "https://www.edx.org/learn/nodejs"}}},
	{Skill: "APIs", Courses: []Course{{Title: "APIs for Beginners", Platform: "Udemy", Link: "https://www.udemy.com/course/api-and-web-service-introduction/"}}},
	{Skill: "Machine Learning", Courses: []Course{{Title: "Machine Learning", Platform: "Coursera", Link: "https://www.coursera.org/learn/machine-learning"}}},
}

// Default returns the built-in catalog.
func Default() *Store {
	return New(builtinRoles, builtinJobs, builtinCourses)
}
