package oracle

// Action words for meaning pairs.
var defaultActions = []string{
	"Abandon", "Attain", "Betray", "Bestow", "Break", "Carry", "Conceal",
	"Control", "Deceive", "Delay", "Destroy", "Disrupt", "Embrace", "Escape",
	"Expose", "Guide", "Haunt", "Imprison", "Inspect", "Investigate",
	"Journey", "Mistrust", "Oppose", "Oppress", "Overindulge", "Persecute",
	"Possess", "Procrastinate", "Protect", "Pursue", "Release", "Return",
	"Reveal", "Ruin", "Seize", "Separate", "Struggle", "Summon", "Transform",
	"Trick", "Usurp", "Violate", "Waste", "Wound",
}

// Subject words for meaning pairs.
var defaultSubjects = []string{
	"Adversity", "Allies", "Ambush", "Anger", "Balance", "Bargain", "Burden",
	"Danger", "Dreams", "Enemies", "Evil", "Failure", "Fame", "Fear",
	"Freedom", "Goals", "Home", "Hope", "Information", "Innocence",
	"Leadership", "Legacy", "Liberty", "Lies", "Magic", "Messages",
	"Nature", "Opulence", "Pain", "Plans", "Power", "Randomness", "Rumor",
	"Secrets", "Stalemate", "Strangers", "Suffering", "Technology", "Travel",
	"Trust", "Truth", "Vengeance", "Wealth", "Weapons",
}

// Random-event focus ranges on 1d100.
var defaultFoci = []FocusRange{
	{Min: 1, Max: 7, Focus: "Remote event"},
	{Min: 8, Max: 28, Focus: "NPC action"},
	{Min: 29, Max: 35, Focus: "Introduce a new NPC"},
	{Min: 36, Max: 45, Focus: "Move toward a thread"},
	{Min: 46, Max: 52, Focus: "Move away from a thread"},
	{Min: 53, Max: 55, Focus: "Close a thread"},
	{Min: 56, Max: 67, Focus: "PC negative"},
	{Min: 68, Max: 75, Focus: "PC positive"},
	{Min: 76, Max: 83, Focus: "Ambiguous event"},
	{Min: 84, Max: 92, Focus: "NPC negative"},
	{Min: 93, Max: 100, Focus: "NPC positive"},
}
