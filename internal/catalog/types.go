package catalog

import "gopkg.in/yaml.v3"

// GradeRange bounds the accepted grade levels (inclusive)
type GradeRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// Contains reports whether grade lies within the range
func (g GradeRange) Contains(grade int) bool {
	return grade >= g.Min && grade <= g.Max
}

// LearnerType is a learning preference a lesson can be tailored to
type LearnerType struct {
	// Name is the wire value (set from the YAML key)
	Name        string `yaml:"-" json:"name"`
	Description string `yaml:"description" json:"description"`
}

// Language is a translation target offered to the learner
type Language struct {
	Code string `yaml:"-" json:"code"`
	Name string `yaml:"-" json:"name"`
}

// Catalog holds the form options
type Catalog struct {
	Grades       GradeRange    `yaml:"grades" json:"grades"`
	LearnerTypes []LearnerType `yaml:"-" json:"learner_types"`
	Subjects     []string      `yaml:"subjects" json:"subjects"`
	Languages    []Language    `yaml:"-" json:"languages"`
}

// UnmarshalYAML keeps learner types and languages in file order
func (c *Catalog) UnmarshalYAML(node *yaml.Node) error {
	type plain struct {
		Grades       GradeRange             `yaml:"grades"`
		Subjects     []string               `yaml:"subjects"`
		LearnerTypes map[string]LearnerType `yaml:"learner_types"`
		Languages    map[string]string      `yaml:"languages"`
	}
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}

	c.Grades = p.Grades
	c.Subjects = p.Subjects

	// node.Content alternates key, value
	for i := 0; i+1 < len(node.Content); i += 2 {
		section := node.Content[i+1]
		switch node.Content[i].Value {
		case "learner_types":
			for j := 0; j+1 < len(section.Content); j += 2 {
				name := section.Content[j].Value
				lt := p.LearnerTypes[name]
				lt.Name = name
				c.LearnerTypes = append(c.LearnerTypes, lt)
			}
		case "languages":
			for j := 0; j+1 < len(section.Content); j += 2 {
				code := section.Content[j].Value
				c.Languages = append(c.Languages, Language{Code: code, Name: p.Languages[code]})
			}
		}
	}

	return nil
}
