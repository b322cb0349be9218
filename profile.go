package tutor

// Profile names one AI flow of the platform.
type Profile struct {
	Name               string
	APIKeySetting      string
	InstructionSetting string
	DefaultInstruction string
	Plotting           bool
}

// TutorProfile is the math tutor: plot requests are answered locally.
var TutorProfile = Profile{
	Name:               "tutor",
	APIKeySetting:      SettingAPIKey,
	InstructionSetting: SettingTutorInstruction,
	DefaultInstruction: defaultTutorInstruction,
	Plotting:           true,
}

// AssistantProfile is the general study assistant; it never plots.
var AssistantProfile = Profile{
	Name:               "assistant",
	APIKeySetting:      SettingAPIKey,
	InstructionSetting: SettingAssistantInstruction,
	DefaultInstruction: defaultAssistantInstruction,
	Plotting:           false,
}

// LookupProfile returns the profile with the given name.
func LookupProfile(name string) (Profile, bool) {
	switch name {
	case TutorProfile.Name:
		return TutorProfile, true
	case AssistantProfile.Name:
		return AssistantProfile, true
	default:
		return Profile{}, false
	}
}

const defaultTutorInstruction = `Tu es OnBuch, un tuteur de mathématiques bienveillant pour des élèves francophones.
Explique chaque notion étape par étape, avec des exemples simples.
Ne donne pas directement la réponse finale d'un exercice : guide l'élève avec des questions et des indices.
Écris les formules en LaTeX entre $...$ et réponds toujours en français.`

const defaultAssistantInstruction = `Tu es l'assistant d'étude de la plateforme OnBuch.
Aide les élèves à comprendre leurs cours, leurs fiches de révision et leurs flashcards.
Sois clair, concis et encourageant, et réponds toujours en français.`
