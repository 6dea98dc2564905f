package catalog

// EvalType selects the evaluation strategy for an achievement definition.
type EvalType string

// Supported evaluation strategies.
const (
	EvalTotal          EvalType = "TOTAL"
	EvalValue          EvalType = "VALUE"
	EvalSubjectMastery EvalType = "SUBJECT_MASTERY"
	EvalFullPassport   EvalType = "FULL_PASSPORT"
	EvalCustom         EvalType = "CUSTOM"
)

// Tier is a display-only difficulty band.
type Tier string

// Difficulty tiers from easiest to hardest.
const (
	TierBeginner Tier = "BEGINNER"
	TierSkilled  Tier = "SKILLED"
	TierExpert   Tier = "EXPERT"
	TierMaster   Tier = "MASTER"
	TierLegend   Tier = "LEGEND"
)

// Criteria carries the counting parameters of a teacher-authored custom
// reward. Empty fields mean "no filter".
type Criteria struct {
	Type      EvalType `json:"type"`
	Threshold int      `json:"threshold"`
	Value     string   `json:"value,omitempty"`
	Subject   string   `json:"subject,omitempty"`
	SubValue  string   `json:"sub_value,omitempty"`
}

// Definition describes one achievement: what it is called, which evaluation
// strategy applies and the strategy's parameters. Static definitions live in
// Achievements; teacher-authored custom rewards are materialised into the same
// shape before evaluation.
type Definition struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Reward      string    `json:"reward"`
	Type        EvalType  `json:"type"`
	Tier        Tier      `json:"tier"`
	Target      string    `json:"target,omitempty"`    // CoreValue name or Subject name
	Threshold   int       `json:"threshold,omitempty"` // count, or star count for SUBJECT_MASTERY
	Criteria    *Criteria `json:"criteria,omitempty"`  // teacher-authored rewards only
}

// Achievements is the global static catalog, in display order.
var Achievements = []Definition{
	// Milestones over the whole stamp history.
	{ID: "first-stamp", Title: "First Stamp", Description: "Earn your very first stamp", Reward: "Passport Sticker", Type: EvalTotal, Tier: TierBeginner, Threshold: 1},
	{ID: "rising-star", Title: "Rising Star", Description: "Collect 10 stamps", Reward: "Golden Star Badge", Type: EvalTotal, Tier: TierSkilled, Threshold: 10},
	{ID: "passport-pro", Title: "Passport Pro", Description: "Collect 25 stamps", Reward: "Canteen Voucher", Type: EvalTotal, Tier: TierExpert, Threshold: 25},
	{ID: "half-century", Title: "Half Century", Description: "Collect 50 stamps", Reward: "Principal's Certificate", Type: EvalTotal, Tier: TierMaster, Threshold: 50},
	{ID: "century-club", Title: "Century Club", Description: "Collect 100 stamps", Reward: "Values Champion Trophy", Type: EvalTotal, Tier: TierLegend, Threshold: 100},

	// Per-value ladders.
	{ID: "first-truth", Title: "Spark of Truth", Description: "Earn a Truth stamp", Reward: "Achievement Unlocked", Type: EvalValue, Tier: TierBeginner, Target: string(ValueTruth), Threshold: 1},
	{ID: "truth-seeker", Title: "Truth Seeker", Description: "Earn 3 Truth stamps", Reward: "Truth Wristband", Type: EvalValue, Tier: TierSkilled, Target: string(ValueTruth), Threshold: 3},
	{ID: "truth-champion", Title: "Truth Champion", Description: "Earn 10 Truth stamps", Reward: "Truth Champion Pin", Type: EvalValue, Tier: TierExpert, Target: string(ValueTruth), Threshold: 10},
	{ID: "first-love", Title: "Spark of Love", Description: "Earn a Love stamp", Reward: "Achievement Unlocked", Type: EvalValue, Tier: TierBeginner, Target: string(ValueLove), Threshold: 1},
	{ID: "love-ambassador", Title: "Love Ambassador", Description: "Earn 3 Love stamps", Reward: "Kindness Wristband", Type: EvalValue, Tier: TierSkilled, Target: string(ValueLove), Threshold: 3},
	{ID: "love-champion", Title: "Love Champion", Description: "Earn 10 Love stamps", Reward: "Love Champion Pin", Type: EvalValue, Tier: TierExpert, Target: string(ValueLove), Threshold: 10},
	{ID: "first-peace", Title: "Spark of Peace", Description: "Earn a Peace stamp", Reward: "Achievement Unlocked", Type: EvalValue, Tier: TierBeginner, Target: string(ValuePeace), Threshold: 1},
	{ID: "peace-keeper", Title: "Peace Keeper", Description: "Earn 3 Peace stamps", Reward: "Peace Wristband", Type: EvalValue, Tier: TierSkilled, Target: string(ValuePeace), Threshold: 3},
	{ID: "peace-champion", Title: "Peace Champion", Description: "Earn 10 Peace stamps", Reward: "Peace Champion Pin", Type: EvalValue, Tier: TierExpert, Target: string(ValuePeace), Threshold: 10},
	{ID: "first-right-conduct", Title: "Spark of Right Conduct", Description: "Earn a Right Conduct stamp", Reward: "Achievement Unlocked", Type: EvalValue, Tier: TierBeginner, Target: string(ValueRightConduct), Threshold: 1},
	{ID: "conduct-captain", Title: "Conduct Captain", Description: "Earn 3 Right Conduct stamps", Reward: "Captain's Wristband", Type: EvalValue, Tier: TierSkilled, Target: string(ValueRightConduct), Threshold: 3},
	{ID: "conduct-champion", Title: "Right Conduct Champion", Description: "Earn 10 Right Conduct stamps", Reward: "Conduct Champion Pin", Type: EvalValue, Tier: TierExpert, Target: string(ValueRightConduct), Threshold: 10},
	{ID: "first-non-violence", Title: "Spark of Non-Violence", Description: "Earn a Non-Violence stamp", Reward: "Achievement Unlocked", Type: EvalValue, Tier: TierBeginner, Target: string(ValueNonViolence), Threshold: 1},
	{ID: "gentle-guardian", Title: "Gentle Guardian", Description: "Earn 3 Non-Violence stamps", Reward: "Guardian Wristband", Type: EvalValue, Tier: TierSkilled, Target: string(ValueNonViolence), Threshold: 3},
	{ID: "non-violence-champion", Title: "Non-Violence Champion", Description: "Earn 10 Non-Violence stamps", Reward: "Non-Violence Champion Pin", Type: EvalValue, Tier: TierExpert, Target: string(ValueNonViolence), Threshold: 10},

	// Subject stars: one full set of all five values in a subject is one star.
	{ID: "math-star", Title: "Math Star", Description: "Earn all 5 values in Math", Reward: "Math Star Badge", Type: EvalSubjectMastery, Tier: TierSkilled, Target: SubjectMath, Threshold: 1},
	{ID: "math-superstar", Title: "Math Superstar", Description: "Earn 3 full value sets in Math", Reward: "Math Superstar Badge", Type: EvalSubjectMastery, Tier: TierMaster, Target: SubjectMath, Threshold: 3},
	{ID: "science-star", Title: "Science Star", Description: "Earn all 5 values in Science", Reward: "Science Star Badge", Type: EvalSubjectMastery, Tier: TierSkilled, Target: SubjectScience, Threshold: 1},
	{ID: "science-superstar", Title: "Science Superstar", Description: "Earn 3 full value sets in Science", Reward: "Science Superstar Badge", Type: EvalSubjectMastery, Tier: TierMaster, Target: SubjectScience, Threshold: 3},
	{ID: "english-star", Title: "English Star", Description: "Earn all 5 values in English", Reward: "English Star Badge", Type: EvalSubjectMastery, Tier: TierSkilled, Target: SubjectEnglish, Threshold: 1},
	{ID: "art-star", Title: "Art Star", Description: "Earn all 5 values in Art", Reward: "Art Star Badge", Type: EvalSubjectMastery, Tier: TierSkilled, Target: SubjectArt, Threshold: 1},
	{ID: "music-star", Title: "Music Star", Description: "Earn all 5 values in Music", Reward: "Music Star Badge", Type: EvalSubjectMastery, Tier: TierSkilled, Target: SubjectMusic, Threshold: 1},
	{ID: "sport-star", Title: "Sport Star", Description: "Earn all 5 values in Sport", Reward: "Sport Star Badge", Type: EvalSubjectMastery, Tier: TierSkilled, Target: SubjectSport, Threshold: 1},
	{ID: "playground-star", Title: "Playground Star", Description: "Earn all 5 values in the Playground", Reward: "Playground Star Badge", Type: EvalSubjectMastery, Tier: TierSkilled, Target: SubjectPlayground, Threshold: 1},
	{ID: "assembly-star", Title: "Assembly Star", Description: "Earn all 5 values in Assembly", Reward: "Assembly Star Badge", Type: EvalSubjectMastery, Tier: TierSkilled, Target: SubjectAssembly, Threshold: 1},

	// The complete subject x value grid.
	{ID: "full-passport", Title: "Full Passport", Description: "Earn every value in every subject", Reward: "Values Passport Gold Seal", Type: EvalFullPassport, Tier: TierLegend},

	// Bespoke rules.
	{ID: "master-truth", Title: "Master of Truth", Description: "Earn Truth in every subject", Reward: "Master of Truth Medal", Type: EvalCustom, Tier: TierMaster},
	{ID: "master-love", Title: "Master of Love", Description: "Earn Love in every subject", Reward: "Master of Love Medal", Type: EvalCustom, Tier: TierMaster},
	{ID: "master-peace", Title: "Master of Peace", Description: "Earn Peace in every subject", Reward: "Master of Peace Medal", Type: EvalCustom, Tier: TierMaster},
	{ID: "master-right-conduct", Title: "Master of Right Conduct", Description: "Earn Right Conduct in every subject", Reward: "Master of Right Conduct Medal", Type: EvalCustom, Tier: TierMaster},
	{ID: "master-non-violence", Title: "Master of Non-Violence", Description: "Earn Non-Violence in every subject", Reward: "Master of Non-Violence Medal", Type: EvalCustom, Tier: TierMaster},
	{ID: "seva-star", Title: "Seva Star", Description: "Earn 5 Love stamps in the Playground or on Excursions", Reward: "Seva Star Badge", Type: EvalCustom, Tier: TierExpert},
	{ID: "hat-trick", Title: "Hat-Trick", Description: "Earn 3 stamps in a single day", Reward: "Hat-Trick Sticker", Type: EvalCustom, Tier: TierSkilled},
	{ID: "subject-explorer", Title: "Subject Explorer", Description: "Earn stamps in 3 different subjects", Reward: "Explorer Compass Sticker", Type: EvalCustom, Tier: TierBeginner},
	{ID: "value-explorer", Title: "Value Explorer", Description: "Earn stamps for 3 different values", Reward: "Explorer Map Sticker", Type: EvalCustom, Tier: TierBeginner},
	{ID: "the-optimist", Title: "The Optimist", Description: "Be recognised for Optimism or Calmness", Reward: "Sunshine Sticker", Type: EvalCustom, Tier: TierSkilled},
	{ID: "true-friend", Title: "True Friend", Description: "Be recognised for Friendship or Kindness", Reward: "Friendship Band", Type: EvalCustom, Tier: TierSkilled},
	{ID: "future-leader", Title: "Future Leader", Description: "Be recognised for Leadership or Responsibility", Reward: "Leader's Pin", Type: EvalCustom, Tier: TierExpert},
	{ID: "mindful-master", Title: "Mindful Master", Description: "Be recognised for Focus or Self-Discipline", Reward: "Mindfulness Sticker", Type: EvalCustom, Tier: TierSkilled},
	{ID: "guardian-of-nature", Title: "Guardian of Nature", Description: "Be recognised for Respect for Nature or Care for Others", Reward: "Nature Guardian Badge", Type: EvalCustom, Tier: TierSkilled},
	{ID: "head-heart-hand", Title: "Head, Heart & Hand", Description: "Earn stamps in an academic, a creative and an active setting", Reward: "Balance Badge", Type: EvalCustom, Tier: TierExpert},
	{ID: "planner-first", Title: "Getting Organised", Description: "Add your first planner item", Reward: "Achievement Unlocked", Type: EvalCustom, Tier: TierBeginner},
	{ID: "planner-10", Title: "Master Planner", Description: "Add 10 planner items", Reward: "Planner Sticker Pack", Type: EvalCustom, Tier: TierSkilled},
	{ID: "planner-complete-5", Title: "Finisher", Description: "Complete 5 planner items", Reward: "Finisher Badge", Type: EvalCustom, Tier: TierSkilled},
}

// DefinitionByID returns the static definition with the given id.
func DefinitionByID(id string) (Definition, bool) {
	for _, def := range Achievements {
		if def.ID == id {
			return def, true
		}
	}
	return Definition{}, false
}
