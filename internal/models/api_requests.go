package models

// GroupQuery asks for the merged ADP of one group of leagues.
// Teams overrides the detected team count used for round.pick formatting.
type GroupQuery struct {
	LeagueIDs []string `validate:"required,min=1,max=50,dive,required,max=64"`
	Teams     int      `validate:"gte=0,lte=32"`
}

// CompareQuery asks for a Side A vs Side B comparison. SideB may be empty.
type CompareQuery struct {
	SideA []string `validate:"required,min=1,max=50,dive,required,max=64"`
	SideB []string `validate:"max=50,dive,required,max=64"`
	Teams int      `validate:"gte=0,lte=32"`
}

// LeaguesQuery lists a user's leagues for a season.
type LeaguesQuery struct {
	Username string `validate:"required,max=64"`
	Season   string `validate:"required,numeric,len=4"`
}
