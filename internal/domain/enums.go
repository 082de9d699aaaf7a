package domain

// TimeZone identifies the IANA zone a company operates in. Values are
// persisted as integers, so new zones must only be appended.
type TimeZone int

const (
	TimeZoneUTC TimeZone = 0

	TimeZoneBogota      TimeZone = 1
	TimeZoneMexicoCity  TimeZone = 2
	TimeZoneNewYork     TimeZone = 3
	TimeZoneLosAngeles  TimeZone = 4
	TimeZoneBuenosAires TimeZone = 5
	TimeZoneSantiago    TimeZone = 6
	TimeZoneLima        TimeZone = 7
	TimeZoneCaracas     TimeZone = 8
	TimeZoneLaPaz       TimeZone = 9

	TimeZoneLondon TimeZone = 10
	TimeZoneParis  TimeZone = 11
	TimeZoneMadrid TimeZone = 12
	TimeZoneBerlin TimeZone = 13

	TimeZoneTokyo     TimeZone = 20
	TimeZoneShanghai  TimeZone = 21
	TimeZoneDubai     TimeZone = 22
	TimeZoneSingapore TimeZone = 23

	TimeZoneSaoPaulo TimeZone = 30
	TimeZoneManaus   TimeZone = 31

	TimeZoneGuatemala TimeZone = 40
	TimeZonePanama    TimeZone = 43
	TimeZoneHavana    TimeZone = 44

	TimeZoneMontevideo TimeZone = 50
	TimeZoneAsuncion   TimeZone = 51
)

// timeZoneNames maps each zone to its IANA identifier
var timeZoneNames = map[TimeZone]string{
	TimeZoneUTC:         "UTC",
	TimeZoneBogota:      "America/Bogota",
	TimeZoneMexicoCity:  "America/Mexico_City",
	TimeZoneNewYork:     "America/New_York",
	TimeZoneLosAngeles:  "America/Los_Angeles",
	TimeZoneBuenosAires: "America/Argentina/Buenos_Aires",
	TimeZoneSantiago:    "America/Santiago",
	TimeZoneLima:        "America/Lima",
	TimeZoneCaracas:     "America/Caracas",
	TimeZoneLaPaz:       "America/La_Paz",
	TimeZoneLondon:      "Europe/London",
	TimeZoneParis:       "Europe/Paris",
	TimeZoneMadrid:      "Europe/Madrid",
	TimeZoneBerlin:      "Europe/Berlin",
	TimeZoneTokyo:       "Asia/Tokyo",
	TimeZoneShanghai:    "Asia/Shanghai",
	TimeZoneDubai:       "Asia/Dubai",
	TimeZoneSingapore:   "Asia/Singapore",
	TimeZoneSaoPaulo:    "America/Sao_Paulo",
	TimeZoneManaus:      "America/Manaus",
	TimeZoneGuatemala:   "America/Guatemala",
	TimeZonePanama:      "America/Panama",
	TimeZoneHavana:      "America/Havana",
	TimeZoneMontevideo:  "America/Montevideo",
	TimeZoneAsuncion:    "America/Asuncion",
}

// IsValid reports whether the value is a known zone
func (z TimeZone) IsValid() bool {
	_, ok := timeZoneNames[z]
	return ok
}

// String returns the IANA identifier, or "UTC" for unknown values
func (z TimeZone) String() string {
	if name, ok := timeZoneNames[z]; ok {
		return name
	}
	return "UTC"
}

// ClassSpec is a player's class and specialization pair
type ClassSpec int

const (
	ClassHeavyGuardianEarthfort  ClassSpec = 0
	ClassHeavyGuardianBlock      ClassSpec = 1
	ClassStormbladeIaidoSlash    ClassSpec = 2
	ClassStormbladeMoonstrike    ClassSpec = 3
	ClassWindKnightVanguard      ClassSpec = 4
	ClassWindKnightSkyward       ClassSpec = 5
	ClassMarksmanWildpack        ClassSpec = 6
	ClassMarksmanFalconry        ClassSpec = 7
	ClassFrostMageIcicle         ClassSpec = 8
	ClassFrostMageFrostbeam      ClassSpec = 9
	ClassVerdantOracleSmite      ClassSpec = 10
	ClassVerdantOracleLifebind   ClassSpec = 11
	ClassShieldKnightRecovery    ClassSpec = 12
	ClassShieldKnightShield      ClassSpec = 13
	ClassBeatPerformerDissonance ClassSpec = 14
	ClassBeatPerformerConcerto   ClassSpec = 15
)

// IsValid reports whether the value is a known class spec
func (c ClassSpec) IsValid() bool {
	return c >= ClassHeavyGuardianEarthfort && c <= ClassBeatPerformerConcerto
}

// OnlineSlot is a recurring time window a guild is active in
type OnlineSlot int

const (
	OnlineMorning   OnlineSlot = 0
	OnlineAfternoon OnlineSlot = 1
	OnlineEvening   OnlineSlot = 2
	OnlineNight     OnlineSlot = 3
	OnlineWeekends  OnlineSlot = 4
)

// IsValid reports whether the value is a known slot
func (o OnlineSlot) IsValid() bool {
	return o >= OnlineMorning && o <= OnlineWeekends
}

// GuildTag categorizes a guild's play style
type GuildTag int

const (
	TagPvP      GuildTag = 0
	TagPvE      GuildTag = 1
	TagRaids    GuildTag = 2
	TagCasual   GuildTag = 3
	TagHardcore GuildTag = 4
	TagSocial   GuildTag = 5
	TagTrading  GuildTag = 6
	TagCrafting GuildTag = 7
)

// IsValid reports whether the value is a known tag
func (t GuildTag) IsValid() bool {
	return t >= TagPvP && t <= TagCrafting
}
