package models

// PlacementStats summarises a college's placement record.
type PlacementStats struct {
	AveragePackage string `yaml:"average_package" json:"average_package"`
	HighestPackage string `yaml:"highest_package" json:"highest_package"`
	PlacementRate  string `yaml:"placement_rate" json:"placement_rate"`
}

// College is a partner institution shown on the public site.
type College struct {
	ID              string         `yaml:"id" json:"id"`
	Name            string         `yaml:"name" json:"name"`
	Description     string         `yaml:"description" json:"description"`
	Website         string         `yaml:"website" json:"website,omitempty"`
	NIRFRank        int            `yaml:"nirf_rank" json:"nirf_rank,omitempty"`
	NAACGrade       string         `yaml:"naac_grade" json:"naac_grade,omitempty"`
	Location        string         `yaml:"location" json:"location"`
	EstablishedYear int            `yaml:"established_year" json:"established_year,omitempty"`
	Specializations []string       `yaml:"specializations" json:"specializations"`
	PlacementStats  PlacementStats `yaml:"placement_stats" json:"placement_stats"`
	Facilities      []string       `yaml:"facilities" json:"facilities,omitempty"`
	TopRecruiters   []string       `yaml:"top_recruiters" json:"top_recruiters,omitempty"`
}

// CollegeOffering describes how one college delivers a course.
type CollegeOffering struct {
	CollegeName      string   `yaml:"college_name" json:"college_name"`
	AveragePlacement string   `yaml:"average_placement" json:"average_placement"`
	TopCompanies     []string `yaml:"top_companies" json:"top_companies"`
	Specialization   string   `yaml:"specialization" json:"specialization"`
	WhyRecommended   string   `yaml:"why_recommended" json:"why_recommended"`
}

// Course is a programme students can enquire about.
type Course struct {
	ID               string            `yaml:"id" json:"id"`
	Name             string            `yaml:"name" json:"name"`
	FullName         string            `yaml:"full_name" json:"full_name"`
	Type             string            `yaml:"type" json:"type"`
	Duration         string            `yaml:"duration" json:"duration"`
	Description      string            `yaml:"description" json:"description"`
	CareerProspects  []string          `yaml:"career_prospects" json:"career_prospects"`
	WhyChoose        string            `yaml:"why_choose" json:"why_choose"`
	CollegesOffering []CollegeOffering `yaml:"colleges_offering" json:"colleges_offering"`
}

// Catalog bundles the read-only public reference data.
type Catalog struct {
	Colleges []College `yaml:"colleges" json:"colleges"`
	Courses  []Course  `yaml:"courses" json:"courses"`
}
