// Package org holds the organizational master data: departments, grade
// categories, grades and designations, plus the hierarchy rule inputs.
package org

type Department struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

// GradeCategory ranks a family of grades. Weight totally orders
// categories by seniority; no two categories share a weight.
type GradeCategory struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Weight   int    `json:"weight"`
}

// Grade is one rung of a category ladder. Name is category + level
// ("TS3" = category "TS", level 3); level 1 is the entry level.
type Grade struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Level       int    `json:"level"`
	Description string `json:"description"`
	Grade       string `json:"grade"`
	Active      bool   `json:"active"`
}

// Designation binds a job title to a (department, grade) pair. An
// employee's designation is resolved through this mapping on
// onboarding and on every grade change.
type Designation struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Grade      string `json:"grade"`
	Active     bool   `json:"active"`
}
