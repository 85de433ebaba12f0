package curriculum

// Skill навык программы. Index сквозной по всей программе, начиная с 1
type Skill struct {
	Name        string
	Description string
	Index       int
}

type Unit struct {
	Title  string
	Skills []Skill
}

// Section группа навыков. Title совпадает со skill_group ребёнка
type Section struct {
	Title string
	Units []Unit
}

// Skills все навыки раздела по порядку
func (s Section) Skills() []Skill {
	var out []Skill
	for _, u := range s.Units {
		out = append(out, u.Skills...)
	}
	return out
}

var sections = []Section{
	{
		Title: "Water Safety",
		Units: []Unit{
			{Title: "Water Confidence", Skills: []Skill{
				{"Enter and Exit the pool safely", "Learn to enter and exit the pool safely.", 1},
				{"Bubbles with Mouth", "Blow bubbles using your mouth in the water.", 2},
				{"Bubbles with Nose", "Blow bubbles using your nose in the water.", 3},
				{"Bobbing", "Practice full submersion in water.", 4},
				{"Rings", "Grab rings underwater (on and off stairs).", 5},
			}},
			{Title: "Floating", Skills: []Skill{
				{"Starfish Float (Back)", "Learn to float on your back like a starfish.", 6},
				{"Starfish Float (Front)", "Learn to float on your front like a starfish.", 7},
				{"Tuck Float", "Practice floating in a tuck position.", 8},
			}},
			{Title: "Kicking", Skills: []Skill{
				{"Flutter Kick with Kickboard", "Kick 5 yards with a kickboard (head up, then down).", 9},
				{"Flutter Kick on Front and Back", "Kick 5 yards on front and back (Figure 11, Streamline).", 10},
			}},
		},
	},
	{
		Title: "Freestyle",
		Units: []Unit{
			{Title: "Strokes", Skills: []Skill{
				{"Bent Elbow", "Learn proper elbow bending to prevent straight-arm recovery.", 11},
				{"Shoulder-Width Hand Placement", "Focus on hand placement to prevent hand crossover.", 12},
				{"Full Pull", "Ensure full freestyle pull extending behind.", 13},
			}},
			{Title: "Kicking", Skills: []Skill{
				{"Straight Legs", "Maintain straight legs to avoid bicycle kicks.", 14},
				{"Fast Small Kicks", "Keep kicks fast and small to avoid big slow kicks.", 15},
			}},
			{Title: "Breathing", Skills: []Skill{
				{"Side Kick with Kickboard", "Practice side kicking with and without a kickboard.", 16},
				{"Switch Drill with Side Breathing", "Perform switch drills with side breathing over 10-15 yards.", 17},
				{"Side Breathing", "Practice side breathing over 10-15 yards.", 18},
			}},
			{Title: "Overall", Skills: []Skill{
				{"Freestyle Laps", "Complete 2 laps (40-50 yards) of freestyle non-stop.", 19},
			}},
		},
	},
	{
		Title: "Backstroke",
		Units: []Unit{
			{Title: "Introductory", Skills: []Skill{
				{"Flutter Kick on Back", "Kick 10 yards on your back (Figure 11 -> Streamline).", 20},
				{"Flat Head Position", "Maintain a flat head position with eyes to the sky to prevent sinking legs.", 21},
				{"Blow Out with Nose", "Blow out with your nose to prevent water entry.", 22},
			}},
			{Title: "Strokes", Skills: []Skill{
				{"Y Position", "Prevent straight-back arm strokes with proper arm positioning.", 23},
				{"Alternating Arm Pull and Recovery", "Learn alternating arm pull and recovery on the backside.", 24},
			}},
			{Title: "Kicking", Skills: []Skill{
				{"Straight Legs", "Maintain straight legs to avoid bicycle kicks.", 25},
				{"Fast Small Kicks", "Perform fast, small kicks to improve efficiency.", 26},
			}},
		},
	},
	{
		Title: "Breaststroke",
		Units: []Unit{
			{Title: "Introductory", Skills: []Skill{
				{"Wall Push Off", "Hold a glide in Figure 11 position for 4 seconds.", 27},
			}},
			{Title: "Pull", Skills: []Skill{
				{"Standing Head Down Intro Pull Technique", "Learn the basics of the breaststroke pull.", 28},
				{"Breathe Every Stroke", "Coordinate breathing with every stroke.", 29},
			}},
			{Title: "Kicking", Skills: []Skill{
				{"Synchronized Legs Kick", "Perform synchronized leg kicks for propulsion.", 30},
				{"Kickboard + Head Down Kick", "Practice kicking 10 yards with a kickboard and head down.", 31},
				{"Streamline Push Off Kick", "Kick 10 yards in streamline position.", 32},
			}},
			{Title: "Stroke", Skills: []Skill{
				{"Timing", "Master timing: pull in (arms/legs + breathe), push out (arms), sweep legs, head down.", 33},
			}},
		},
	},
	{
		Title: "Butterfly",
		Units: []Unit{
			{Title: "Introductory", Skills: []Skill{
				{"Wall Push Off", "Hold a glide in Figure 11 position for 4 seconds.", 34},
			}},
			{Title: "Pull", Skills: []Skill{
				{"Standing Head Down Intro Pull Technique", "Learn the basics of the butterfly pull.", 35},
				{"Breathe Every Stroke", "Coordinate breathing with every stroke.", 36},
			}},
			{Title: "Kicking", Skills: []Skill{
				{"Synchronized Legs Kick", "Perform synchronized leg kicks for butterfly.", 37},
				{"Kickboard + Head Down Kick", "Practice kicking 10 yards with a kickboard and head down.", 38},
				{"Streamline Push Off Kick", "Kick 10 yards in streamline position.", 39},
			}},
			{Title: "Stroke", Skills: []Skill{
				{"Timing", "Master timing: pull in (arms/legs + breathe), push out (arms), sweep legs, head down.", 40},
			}},
		},
	},
}

// Sections программа обучения по порядку
func Sections() []Section {
	return sections
}

// Find раздел по названию
func Find(title string) (Section, bool) {
	for _, s := range sections {
		if s.Title == title {
			return s, true
		}
	}
	return Section{}, false
}

// Progress положение ребёнка в программе
type Progress struct {
	Section       Section
	SectionNumber int    // с 1
	Last          *Skill // последний освоенный навык, nil если ещё нет
	Next          *Skill // следующий навык раздела, nil если раздел пройден
	Obtained      int    // освоено навыков в разделе
	Total         int    // навыков в разделе
}

// ProgressOf прогресс по skill_group и last_obtained_skill ребёнка.
// Неизвестная группа означает первый раздел, неизвестный навык ноль освоенных
func ProgressOf(skillGroup, lastSkill string) Progress {
	number := sectionNumber(skillGroup)
	section := sections[number-1]

	skills := section.Skills()
	p := Progress{Section: section, SectionNumber: number, Total: len(skills)}

	lastIndex := 0
	for i := range skills {
		if skills[i].Name == lastSkill {
			p.Last = &skills[i]
			lastIndex = skills[i].Index
			break
		}
	}

	for i := range skills {
		if skills[i].Index <= lastIndex {
			p.Obtained++
			continue
		}
		if p.Next == nil {
			p.Next = &skills[i]
		}
	}

	return p
}

// Percent доля освоенных навыков раздела, 0..100
func (p Progress) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return p.Obtained * 100 / p.Total
}

// Advance навык, который освоен следующим. После последнего навыка раздела переходит
// к первому навыку следующего раздела. ok false, если программа пройдена
func Advance(skillGroup, lastSkill string) (group string, skill Skill, ok bool) {
	p := ProgressOf(skillGroup, lastSkill)
	if p.Next != nil {
		return p.Section.Title, *p.Next, true
	}
	if p.SectionNumber == len(sections) {
		return p.Section.Title, Skill{}, false
	}

	next := sections[p.SectionNumber]
	return next.Title, next.Units[0].Skills[0], true
}

func sectionNumber(title string) int {
	for i, s := range sections {
		if s.Title == title {
			return i + 1
		}
	}
	return 1
}
