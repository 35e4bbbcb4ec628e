package models

// ProjectCategories are the selectable values for Project.Category.
var ProjectCategories = []string{
	"Data Analysis",
	"Web Design & Development",
	"Game Design",
	"Other",
}

// Project represents one portfolio entry. Required columns are not-null;
// the remaining descriptive columns are nullable because older revisions of
// the site did not collect them.
type Project struct {
	ID           uint    `json:"id" gorm:"primaryKey;autoIncrement"`
	Title        string  `json:"title" gorm:"type:varchar(250);not null;unique"`
	Subtitle     *string `json:"subtitle,omitempty" gorm:"type:varchar(250)"`
	Category     string  `json:"category" gorm:"type:varchar(30);not null"`
	DateFinished string  `json:"date_finished" gorm:"type:varchar(250);not null"`
	Description  string  `json:"description" gorm:"type:text;not null"`
	Goal         *string `json:"goal,omitempty" gorm:"type:text"`
	Methods      *string `json:"methods,omitempty" gorm:"type:text"`
	Challenges   *string `json:"challenges,omitempty" gorm:"type:text"`
	Tools        *string `json:"tools,omitempty" gorm:"type:text"`
	Sources      *string `json:"sources,omitempty" gorm:"type:text"`
	Improvements *string `json:"improvements,omitempty" gorm:"type:text"`
	Tags         *string `json:"tags,omitempty" gorm:"type:text"`
	ImgURL       string  `json:"img_url" gorm:"type:varchar(250);not null"`
	ImgAltText   *string `json:"img_alt_text,omitempty" gorm:"type:varchar(250)"`
	GithubURL    string  `json:"github_url" gorm:"type:varchar(250);not null"`
}

// TableName keeps the historical table name.
func (Project) TableName() string {
	return "projects"
}
