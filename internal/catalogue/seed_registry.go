package catalogue

// Symptom categories used by the builtin registry.
const (
	CategoryGeneral          = "general"
	CategoryRespiratory      = "respiratory"
	CategoryEarNoseThroat    = "ear-nose-throat"
	CategoryNeurological     = "neurological"
	CategoryGastrointestinal = "gastrointestinal"
	CategoryCardiovascular   = "cardiovascular"
	CategorySkin             = "skin"
	CategoryUrinary          = "urinary"
)

var seedSymptoms = []Symptom{
	// General
	{ID: "fever", Label: "Fever", Category: CategoryGeneral},
	{ID: "chills", Label: "Chills", Category: CategoryGeneral},
	{ID: "fatigue", Label: "Fatigue", Category: CategoryGeneral},
	{ID: "body_aches", Label: "Body aches", Category: CategoryGeneral},
	{ID: "sweating", Label: "Sweating", Category: CategoryGeneral},
	{ID: "thirst", Label: "Excessive thirst", Category: CategoryGeneral},
	{ID: "loss_of_appetite", Label: "Loss of appetite", Category: CategoryGeneral},
	{ID: "swelling", Label: "Swelling of face, lips or tongue", Category: CategoryGeneral},

	// Respiratory
	{ID: "cough", Label: "Cough", Category: CategoryRespiratory},
	{ID: "shortness_of_breath", Label: "Shortness of breath", Category: CategoryRespiratory},
	{ID: "wheezing", Label: "Wheezing", Category: CategoryRespiratory},
	{ID: "chest_tightness", Label: "Chest tightness", Category: CategoryRespiratory},

	// Ear, nose & throat
	{ID: "runny_nose", Label: "Runny nose", Category: CategoryEarNoseThroat},
	{ID: "sneezing", Label: "Sneezing", Category: CategoryEarNoseThroat},
	{ID: "nasal_congestion", Label: "Nasal congestion", Category: CategoryEarNoseThroat},
	{ID: "sore_throat", Label: "Sore throat", Category: CategoryEarNoseThroat},
	{ID: "swollen_lymph_nodes", Label: "Swollen lymph nodes", Category: CategoryEarNoseThroat},
	{ID: "loss_of_taste_smell", Label: "Loss of taste or smell", Category: CategoryEarNoseThroat},
	{ID: "ear_pain", Label: "Ear pain", Category: CategoryEarNoseThroat},
	{ID: "hearing_loss", Label: "Hearing loss", Category: CategoryEarNoseThroat},
	{ID: "watery_eyes", Label: "Watery eyes", Category: CategoryEarNoseThroat},

	// Neurological
	{ID: "headache", Label: "Headache", Category: CategoryNeurological},
	{ID: "dizziness", Label: "Dizziness", Category: CategoryNeurological},
	{ID: "confusion", Label: "Confusion", Category: CategoryNeurological},
	{ID: "numbness", Label: "Numbness or weakness on one side", Category: CategoryNeurological},
	{ID: "slurred_speech", Label: "Slurred speech", Category: CategoryNeurological},
	{ID: "facial_droop", Label: "Facial droop", Category: CategoryNeurological},
	{ID: "stiff_neck", Label: "Stiff neck", Category: CategoryNeurological},
	{ID: "sensitivity_to_light", Label: "Sensitivity to light", Category: CategoryNeurological},
	{ID: "blurred_vision", Label: "Blurred vision", Category: CategoryNeurological},
	{ID: "memory_loss", Label: "Memory loss", Category: CategoryNeurological},
	{ID: "head_injury", Label: "Recent blow to the head", Category: CategoryNeurological},

	// Gastrointestinal
	{ID: "nausea", Label: "Nausea", Category: CategoryGastrointestinal},
	{ID: "vomiting", Label: "Vomiting", Category: CategoryGastrointestinal},
	{ID: "diarrhea", Label: "Diarrhea", Category: CategoryGastrointestinal},
	{ID: "abdominal_pain", Label: "Abdominal pain", Category: CategoryGastrointestinal},
	{ID: "lower_right_abdominal_pain", Label: "Pain in the lower right abdomen", Category: CategoryGastrointestinal},

	// Cardiovascular
	{ID: "chest_pain", Label: "Chest pain", Category: CategoryCardiovascular},
	{ID: "arm_pain", Label: "Pain spreading to the arm", Category: CategoryCardiovascular},
	{ID: "jaw_pain", Label: "Jaw or back pain", Category: CategoryCardiovascular},
	{ID: "palpitations", Label: "Palpitations", Category: CategoryCardiovascular},

	// Skin
	{ID: "rash", Label: "Rash", Category: CategorySkin},
	{ID: "itching", Label: "Itching", Category: CategorySkin},
	{ID: "hives", Label: "Hives", Category: CategorySkin},

	// Urinary
	{ID: "painful_urination", Label: "Painful urination", Category: CategoryUrinary},
	{ID: "frequent_urination", Label: "Frequent urination", Category: CategoryUrinary},
}

var seedContexts = []Context{
	{ID: "recent_travel", Label: "Recent travel", Description: "Travelled abroad or to a malaria region in the last month"},
	{ID: "known_allergy", Label: "Known allergy", Description: "Has a diagnosed allergy"},
	{ID: "outbreak_exposure", Label: "Outbreak exposure", Description: "Close contact with a confirmed infectious case"},
	{ID: "shared_meal", Label: "Shared meal", Description: "Others who ate the same food are also unwell"},
	{ID: "elderly", Label: "Over 65", Description: "Aged 65 or older"},
	{ID: "pregnant", Label: "Pregnant"},
	{ID: "diabetic", Label: "Diabetic"},
	{ID: "smoker", Label: "Smoker"},
	{ID: "immunocompromised", Label: "Immunocompromised", Description: "Weakened immune system from illness or medication"},
	{ID: "recent_injury", Label: "Recent injury", Description: "Fall, collision or sports injury in the last 48 hours"},
	{ID: "hot_environment", Label: "Hot environment", Description: "Prolonged exposure to heat or strenuous exercise in heat"},
}
