package roster

// Default returns the bundled roster dataset. It is a starting point for a
// season; production deployments override it with a JSON file via
// ROSTER_PATH.
func Default() Data {
	return Data{
		BackupRBs: map[string]string{
			"brian robinson jr":     "christian mccaffrey",
			"jordan mason":          "christian mccaffrey",
			"rico dowdle":           "tony pollard",
			"kenny gainwell":        "d'andre swift",
			"clyde edwards-helaire": "isiah pacheco",
			"chase brown":           "joe mixon",
			"keaton mitchell":       "derrick henry",
			"pierre strong":         "jerome ford",
			"ty johnson":            "james cook",
			"blake corum":           "kyren williams",
			"royce freeman":         "kyren williams",
			"elijah mitchell":       "christian mccaffrey",
			"cam akers":             "aaron jones",
			"tyjae spears":          "tony pollard",
		},
		BackupTEs: []string{
			"aj barner",
			"foster moreau",
			"johnny mundt",
			"davis allen",
			"john bates",
			"tommy tremble",
			"charlie kolar",
			"harrison bryant",
			"will dissly",
			"gerald everett",
			"zach gentry",
			"josh oliver",
			"nick vannett",
			"jordan akins",
		},
		Committees: map[string][]string{
			"rams":     {"kyren williams", "royce freeman"},
			"patriots": {"rhamondre stevenson", "ezekiel elliott"},
			"browns":   {"jerome ford", "kareem hunt"},
		},
		Exclusions: []string{
			// Backup QBs
			"malik willis", "taylor heinicke", "mason rudolph",
			"mitchell trubisky", "josh dobbs", "jacoby brissett", "andy dalton",
			"jameis winston", "drew lock", "trevor siemian", "jimmy garoppolo",
			// Low-snap TEs
			"davis allen", "foster moreau", "johnny mundt", "nick vannett",
			"john bates", "tre' mckitty", "jordan akins", "mo alie-cox",
			"tommy tremble", "charlie kolar", "zach gentry", "josh oliver",
			"luke farrell",
			// Committee / backup RBs
			"blake corum", "royce freeman", "ty johnson", "pierre strong",
			"clyde edwards-helaire", "elijah mitchell", "cam akers",
			"ronnie rivers", "jashaun corbin", "malik davis", "snoop conner",
			"patrick taylor", "hassan haskins", "deon jackson",
			"julius chestnut", "trayveon williams",
			// WR3/WR4 with inconsistent targets
			"tutu atwell", "demarcus robinson", "van jefferson",
			"kalif raymond", "craig reynolds", "robbie chosen", "james proche",
			"tyler johnson", "jalen nailor", "trent sherfield", "kj osborn",
		},
	}
}
