package schedule

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// templateFile формат YAML-файла шаблона:
//
//	summer_months: [6, 7, 8]
//	summer:
//	  - days: [Mon, Tue, Thu]
//	    times: ["13:15", "14:00"]
//	    duration: 30
//	off_season:
//	  - days: [Sat, Sun]
//	    times: ["10:15"]
//	    duration: 30
type templateFile struct {
	SummerMonths []int           `yaml:"summer_months" validate:"dive,min=1,max=12"`
	Summer       []scheduleBlock `yaml:"summer" validate:"dive"`
	OffSeason    []scheduleBlock `yaml:"off_season" validate:"required,min=1,dive"`
}

type scheduleBlock struct {
	Days     []string    `yaml:"days" validate:"required,min=1,dive,oneof=Sun Mon Tue Wed Thu Fri Sat"`
	Times    []TimeOfDay `yaml:"times" validate:"required,min=1"`
	Duration int         `yaml:"duration" validate:"required,gt=0,lte=240"`
}

var weekdayByShortName = map[string]time.Weekday{
	"Sun": time.Sunday,
	"Mon": time.Monday,
	"Tue": time.Tuesday,
	"Wed": time.Wednesday,
	"Thu": time.Thursday,
	"Fri": time.Friday,
	"Sat": time.Saturday,
}

var validate = validator.New()

// ParseWeekday короткое английское имя дня ("Sat", "sat"). Полные имена тоже принимаются
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.TrimSpace(s)
	if len(s) >= 3 {
		key := strings.ToUpper(s[:1]) + strings.ToLower(s[1:3])
		if wd, ok := weekdayByShortName[key]; ok {
			return wd, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// LoadTemplateFile читает шаблон из YAML-файла
func LoadTemplateFile(path string) (*Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open schedule template: %w", err)
	}
	defer f.Close()

	return LoadTemplate(f)
}

// LoadTemplate читает и проверяет шаблон
func LoadTemplate(r io.Reader) (*Template, error) {
	var file templateFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode schedule template: %w", err)
	}

	if err := validate.Struct(file); err != nil {
		return nil, fmt.Errorf("validate schedule template: %w", err)
	}

	months := make([]time.Month, 0, len(file.SummerMonths))
	for _, m := range file.SummerMonths {
		months = append(months, time.Month(m))
	}

	return NewTemplate(months, map[Season][]DayRule{
		SeasonSummer: blocksToRules(file.Summer),
		SeasonOff:    blocksToRules(file.OffSeason),
	})
}

func blocksToRules(blocks []scheduleBlock) []DayRule {
	var rules []DayRule
	for _, block := range blocks {
		for _, day := range block.Days {
			rules = append(rules, DayRule{
				Weekday:             weekdayByShortName[strings.TrimSpace(day)],
				StartTimes:          block.Times,
				SlotDurationMinutes: block.Duration,
			})
		}
	}
	return rules
}
