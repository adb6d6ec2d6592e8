package catalogue

import "github.com/abhisek/triage/internal/rules"

// seedConditions is the builtin condition set. Rules are tuned so that a
// textbook presentation of each condition ranks it first among the builtin
// conditions; they are not clinical guidance.
var seedConditions = []Condition{
	{
		ID:          "common_cold",
		Label:       "Common cold",
		Description: "Viral infection of the nose and throat.",
		Severity:    SeverityLow,
		Rule: rules.AllOf(
			rules.AnyOf(rules.Sym("runny_nose"), rules.Sym("sneezing"), rules.Sym("nasal_congestion")),
			rules.SymW("sore_throat", 0.8),
			rules.SymW("cough", 0.6),
			rules.Weighted(rules.NoneOf(rules.Sym("fever"), rules.Sym("body_aches")), 0.5),
		),
		ContextBonus: []ContextBonus{{Context: "outbreak_exposure", Bonus: 0.05}},
		Actions:      []string{"Rest and drink plenty of fluids", "Use saline nasal spray for congestion"},
		RiskFactors:  []string{"Close contact with infected people", "Winter season"},
		MonitorFor:   []string{"Fever above 39°C", "Symptoms lasting more than 10 days"},
	},
	{
		ID:          "influenza",
		Label:       "Influenza",
		Description: "Acute viral respiratory infection with sudden onset.",
		Severity:    SeverityModerate,
		Rule: rules.AllOf(
			rules.SymW("fever", 1.5),
			rules.SymW("body_aches", 1.5),
			rules.Sym("fatigue"),
			rules.AnyOf(rules.Sym("cough"), rules.Sym("sore_throat"), rules.Sym("headache")),
			rules.SymW("chills", 0.8),
		),
		ContextBonus: []ContextBonus{
			{Context: "outbreak_exposure", Bonus: 0.15},
			{Context: "elderly", Bonus: 0.05},
			{Context: "immunocompromised", Bonus: 0.05},
		},
		Actions:     []string{"Rest and stay home", "Take antipyretics for fever", "Seek care early if in a high risk group"},
		RiskFactors: []string{"Age over 65", "Chronic illness", "Pregnancy"},
		MonitorFor:  []string{"Difficulty breathing", "Persistent chest pain", "Confusion"},
	},
	{
		ID:          "covid19",
		Label:       "COVID-19",
		Description: "Respiratory illness caused by SARS-CoV-2.",
		Severity:    SeverityModerate,
		Rule: rules.AllOf(
			rules.SymW("loss_of_taste_smell", 2),
			rules.AnyOf(rules.Sym("fever"), rules.Sym("cough")),
			rules.Sym("fatigue"),
			rules.SymW("shortness_of_breath", 0.8),
		),
		ContextBonus: []ContextBonus{
			{Context: "outbreak_exposure", Bonus: 0.2},
			{Context: "recent_travel", Bonus: 0.05},
		},
		Actions:     []string{"Take a rapid antigen or PCR test", "Isolate from others"},
		RiskFactors: []string{"Age over 65", "Diabetes", "Immunosuppression"},
		MonitorFor:  []string{"Oxygen saturation below 94%", "Shortness of breath at rest"},
	},
	{
		ID:          "strep_throat",
		Label:       "Strep throat",
		Description: "Bacterial infection of the throat and tonsils.",
		Severity:    SeverityModerate,
		Rule: rules.AllOf(
			rules.SymW("sore_throat", 2),
			rules.Sym("fever"),
			rules.Sym("swollen_lymph_nodes"),
			rules.Weighted(rules.NoneOf(rules.Sym("cough"), rules.Sym("runny_nose")), 1.5),
		),
		Actions:     []string{"See a clinician for a rapid strep test", "Complete any prescribed antibiotics"},
		RiskFactors: []string{"School-age children in household"},
		MonitorFor:  []string{"Difficulty swallowing", "Rash"},
	},
	{
		ID:          "migraine",
		Label:       "Migraine",
		Description: "Recurrent moderate to severe headache, often one-sided.",
		Severity:    SeverityLow,
		Rule: rules.AllOf(
			rules.SymW("headache", 1.5),
			rules.AnyOf(rules.Sym("sensitivity_to_light"), rules.Sym("nausea"), rules.Sym("blurred_vision")),
			rules.Negate(rules.Sym("fever")),
		),
		Actions:     []string{"Rest in a dark quiet room", "Take pain relief early"},
		RiskFactors: []string{"Family history", "Stress", "Irregular sleep"},
		MonitorFor:  []string{"Worst headache of your life", "Weakness or numbness"},
	},
	{
		ID:          "tension_headache",
		Label:       "Tension headache",
		Description: "Dull band-like head pain linked to stress and posture.",
		Severity:    SeverityLow,
		Rule: rules.AllOf(
			rules.SymW("headache", 1.5),
			rules.Weighted(rules.NotAll(rules.Sym("nausea"), rules.Sym("sensitivity_to_light")), 0.5),
			rules.Weighted(rules.Negate(rules.Sym("fever")), 0.5),
			rules.Weighted(rules.Negate(rules.Sym("stiff_neck")), 0.5),
		),
		Actions:     []string{"Rest and hydrate", "Over-the-counter pain relief", "Check posture and screen time"},
		RiskFactors: []string{"Stress", "Poor sleep"},
		MonitorFor:  []string{"Headache with fever or stiff neck"},
	},
	{
		ID:          "meningitis",
		Label:       "Meningitis",
		Description: "Inflammation of the membranes around the brain and spinal cord.",
		Severity:    SeverityEmergency,
		Rule: rules.AllOf(
			rules.SymW("fever", 1.5),
			rules.SymW("stiff_neck", 2.5),
			rules.SymW("headache", 1.5),
			rules.AnyOf(rules.Sym("sensitivity_to_light"), rules.Sym("confusion"), rules.Sym("rash")),
		),
		ContextBonus: []ContextBonus{
			{Context: "outbreak_exposure", Bonus: 0.1},
			{Context: "immunocompromised", Bonus: 0.1},
		},
		Actions:     []string{"Call emergency services immediately"},
		RiskFactors: []string{"Crowded living conditions", "Weakened immunity"},
		MonitorFor:  []string{"Non-blanching rash", "Drowsiness"},
	},
	{
		ID:          "gastroenteritis",
		Label:       "Gastroenteritis",
		Description: "Infection of the stomach and intestines.",
		Severity:    SeverityLow,
		Rule: rules.AllOf(
			rules.AnyOf(rules.Sym("vomiting"), rules.Sym("diarrhea")),
			rules.Sym("nausea"),
			rules.SymW("abdominal_pain", 0.8),
			rules.SymW("fever", 1.2),
		),
		ContextBonus: []ContextBonus{{Context: "outbreak_exposure", Bonus: 0.1}},
		Actions:      []string{"Sip oral rehydration solution", "Eat bland food once vomiting settles"},
		RiskFactors:  []string{"Contaminated food or water", "Contact with an infected person"},
		MonitorFor:   []string{"Signs of dehydration", "Blood in stool"},
	},
	{
		ID:          "food_poisoning",
		Label:       "Food poisoning",
		Description: "Illness from food contaminated with bacteria, viruses or toxins.",
		Severity:    SeverityModerate,
		Rule: rules.AllOf(
			rules.SymW("vomiting", 1.2),
			rules.Sym("diarrhea"),
			rules.Sym("abdominal_pain"),
			rules.SymW("nausea", 0.8),
			rules.Weighted(rules.Negate(rules.Sym("fever")), 0.5),
		),
		ContextBonus: []ContextBonus{
			{Context: "shared_meal", Bonus: 0.3},
			{Context: "recent_travel", Bonus: 0.1},
		},
		Actions:     []string{"Stay hydrated", "Avoid solid food for a few hours"},
		RiskFactors: []string{"Undercooked meat", "Unrefrigerated food"},
		MonitorFor:  []string{"Symptoms lasting more than 3 days", "High fever"},
	},
	{
		ID:          "allergic_reaction",
		Label:       "Allergic reaction",
		Description: "Immune response to an allergen affecting skin or airways.",
		Severity:    SeverityModerate,
		Rule: rules.AllOf(
			rules.AnyOf(rules.Sym("hives"), rules.Sym("rash"), rules.Sym("itching")),
			rules.AnyOf(rules.Sym("sneezing"), rules.Sym("watery_eyes"), rules.Sym("runny_nose")),
			rules.Weighted(rules.Negate(rules.Sym("fever")), 0.5),
		),
		ContextBonus: []ContextBonus{{Context: "known_allergy", Bonus: 0.25}},
		Actions:      []string{"Avoid the suspected trigger", "Take an antihistamine"},
		RiskFactors:  []string{"History of allergies", "Asthma"},
		MonitorFor:   []string{"Swelling of lips or tongue", "Difficulty breathing"},
	},
	{
		ID:          "anaphylaxis",
		Label:       "Anaphylaxis",
		Description: "Severe, potentially life-threatening allergic reaction.",
		Severity:    SeverityEmergency,
		Rule: rules.AllOf(
			rules.SymW("swelling", 2),
			rules.AnyOf(rules.Sym("shortness_of_breath"), rules.Sym("wheezing")),
			rules.AnyOf(rules.Sym("hives"), rules.Sym("itching"), rules.Sym("dizziness")),
		),
		ContextBonus: []ContextBonus{{Context: "known_allergy", Bonus: 0.4}},
		Actions:      []string{"Use an adrenaline auto-injector if available", "Call emergency services"},
		RiskFactors:  []string{"Previous severe reaction", "Food, insect or drug allergy"},
		MonitorFor:   []string{"Return of symptoms after initial treatment"},
	},
	{
		ID:          "heart_attack",
		Label:       "Heart attack",
		Description: "Blocked blood flow to part of the heart muscle.",
		Severity:    SeverityEmergency,
		Rule: rules.Sum(
			rules.SymW("chest_pain", 0.5),
			rules.Weighted(rules.AnyOf(rules.Sym("arm_pain"), rules.Sym("jaw_pain")), 0.35),
			rules.Weighted(rules.AnyOf(rules.Sym("shortness_of_breath"), rules.Sym("sweating"), rules.Sym("nausea")), 0.25),
		),
		ContextBonus: []ContextBonus{
			{Context: "elderly", Bonus: 0.15},
			{Context: "diabetic", Bonus: 0.1},
			{Context: "smoker", Bonus: 0.1},
		},
		Actions:     []string{"Call emergency services immediately", "Chew an aspirin unless allergic"},
		RiskFactors: []string{"Smoking", "Diabetes", "High blood pressure", "Family history"},
		MonitorFor:  []string{"Loss of consciousness"},
	},
	{
		ID:          "stroke",
		Label:       "Stroke",
		Description: "Interrupted blood supply to part of the brain.",
		Severity:    SeverityEmergency,
		Rule: rules.Sum(
			rules.SymW("facial_droop", 0.4),
			rules.SymW("numbness", 0.4),
			rules.SymW("slurred_speech", 0.4),
			rules.Weighted(rules.AnyOf(rules.Sym("confusion"), rules.Sym("blurred_vision"), rules.Sym("dizziness")), 0.2),
		),
		ContextBonus: []ContextBonus{
			{Context: "elderly", Bonus: 0.15},
			{Context: "smoker", Bonus: 0.05},
			{Context: "diabetic", Bonus: 0.05},
		},
		Actions:     []string{"Call emergency services immediately", "Note the time symptoms started"},
		RiskFactors: []string{"High blood pressure", "Atrial fibrillation", "Smoking"},
		MonitorFor:  []string{"Worsening weakness", "Loss of consciousness"},
	},
	{
		ID:          "pneumonia",
		Label:       "Pneumonia",
		Description: "Infection that inflames the air sacs in one or both lungs.",
		Severity:    SeverityHigh,
		Rule: rules.AllOf(
			rules.SymW("cough", 1.5),
			rules.SymW("fever", 1.2),
			rules.SymW("shortness_of_breath", 1.5),
			rules.AnyOf(rules.Sym("chest_pain"), rules.Sym("chills"), rules.Sym("fatigue")),
		),
		ContextBonus: []ContextBonus{
			{Context: "elderly", Bonus: 0.15},
			{Context: "smoker", Bonus: 0.1},
			{Context: "immunocompromised", Bonus: 0.15},
		},
		Actions:     []string{"See a clinician within 24 hours", "Rest and stay hydrated"},
		RiskFactors: []string{"Age over 65", "Smoking", "Chronic lung disease"},
		MonitorFor:  []string{"Bluish lips", "Confusion", "Rapid breathing"},
	},
	{
		ID:          "asthma_attack",
		Label:       "Asthma attack",
		Description: "Sudden narrowing of the airways.",
		Severity:    SeverityHigh,
		Rule: rules.AllOf(
			rules.SymW("wheezing", 2),
			rules.SymW("shortness_of_breath", 1.5),
			rules.Sym("chest_tightness"),
			rules.Weighted(rules.Negate(rules.Sym("fever")), 0.5),
		),
		ContextBonus: []ContextBonus{
			{Context: "known_allergy", Bonus: 0.1},
			{Context: "smoker", Bonus: 0.05},
		},
		Actions:     []string{"Use a reliever inhaler", "Sit upright and breathe slowly"},
		RiskFactors: []string{"Asthma diagnosis", "Allergen or smoke exposure"},
		MonitorFor:  []string{"No relief from inhaler", "Difficulty speaking"},
	},
	{
		ID:          "uti",
		Label:       "Urinary tract infection",
		Description: "Bacterial infection of the bladder or urethra.",
		Severity:    SeverityModerate,
		Rule: rules.AllOf(
			rules.SymW("painful_urination", 2),
			rules.SymW("frequent_urination", 1.5),
			rules.SymW("abdominal_pain", 0.5),
			rules.SymW("fever", 0.3),
		),
		ContextBonus: []ContextBonus{
			{Context: "pregnant", Bonus: 0.1},
			{Context: "diabetic", Bonus: 0.05},
		},
		Actions:     []string{"See a clinician for a urine test", "Drink plenty of water"},
		RiskFactors: []string{"Pregnancy", "Diabetes"},
		MonitorFor:  []string{"Back or side pain", "High fever"},
	},
	{
		ID:          "appendicitis",
		Label:       "Appendicitis",
		Description: "Inflammation of the appendix.",
		Severity:    SeverityHigh,
		Rule: rules.AllOf(
			rules.SymW("lower_right_abdominal_pain", 3),
			rules.AnyOf(rules.Sym("nausea"), rules.Sym("vomiting")),
			rules.SymW("fever", 0.8),
			rules.SymW("loss_of_appetite", 0.8),
		),
		Actions:     []string{"Go to an emergency department", "Do not eat or drink until assessed"},
		RiskFactors: []string{"Age 10 to 30"},
		MonitorFor:  []string{"Sudden relief followed by worse pain", "Rigid abdomen"},
	},
	{
		ID:          "dehydration",
		Label:       "Dehydration",
		Description: "Body loses more fluid than it takes in.",
		Severity:    SeverityModerate,
		Rule: rules.AllOf(
			rules.SymW("thirst", 1.5),
			rules.AnyOf(rules.Sym("dizziness"), rules.Sym("fatigue"), rules.Sym("headache")),
			rules.Weighted(rules.If(
				rules.AnyOf(rules.Sym("vomiting"), rules.Sym("diarrhea")),
				rules.Sym("thirst"),
			), 0.5),
		),
		ContextBonus: []ContextBonus{
			{Context: "hot_environment", Bonus: 0.15},
			{Context: "elderly", Bonus: 0.05},
		},
		Actions:     []string{"Drink water or oral rehydration solution", "Rest somewhere cool"},
		RiskFactors: []string{"Vomiting or diarrhea", "Hot weather", "Intense exercise"},
		MonitorFor:  []string{"Not passing urine for 8 hours", "Confusion"},
	},
	{
		ID:          "heat_exhaustion",
		Label:       "Heat exhaustion",
		Description: "Overheating from heat exposure or exertion.",
		Severity:    SeverityHigh,
		Rule: rules.AllOf(
			rules.SymW("sweating", 2),
			rules.Sym("dizziness"),
			rules.AnyOf(rules.Sym("headache"), rules.Sym("nausea"), rules.Sym("fatigue")),
			rules.SymW("thirst", 0.8),
		),
		ContextBonus: []ContextBonus{{Context: "hot_environment", Bonus: 0.35}},
		Actions:      []string{"Move to a cool place", "Drink cool water", "Loosen clothing"},
		RiskFactors:  []string{"Hot weather", "Strenuous activity", "Older age"},
		MonitorFor:   []string{"Confusion", "No improvement after 30 minutes of cooling"},
	},
	{
		ID:          "concussion",
		Label:       "Concussion",
		Description: "Temporary brain injury from a blow to the head.",
		Severity:    SeverityHigh,
		Rule: rules.AllOf(
			rules.SymW("head_injury", 3),
			rules.AnyOf(rules.Sym("headache"), rules.Sym("dizziness"), rules.Sym("confusion")),
			rules.AnyOf(rules.Sym("memory_loss"), rules.Sym("nausea"), rules.Sym("blurred_vision")),
		),
		ContextBonus: []ContextBonus{{Context: "recent_injury", Bonus: 0.2}},
		Actions:      []string{"Stop any physical activity", "Have someone stay with you for 24 hours"},
		RiskFactors:  []string{"Contact sports", "Falls"},
		MonitorFor:   []string{"Repeated vomiting", "Worsening headache", "Unequal pupils"},
	},
	{
		ID:          "malaria",
		Label:       "Malaria",
		Description: "Mosquito-borne parasitic infection.",
		Severity:    SeverityHigh,
		Rule: rules.AllOf(
			rules.SymW("fever", 1.5),
			rules.Sym("chills"),
			rules.Sym("sweating"),
			rules.AnyOf(rules.Sym("headache"), rules.Sym("body_aches"), rules.Sym("nausea")),
		),
		ContextBonus: []ContextBonus{{Context: "recent_travel", Bonus: 0.4}},
		Actions:      []string{"Seek urgent testing if you travelled to a malaria region"},
		RiskFactors:  []string{"Travel to endemic regions", "No antimalarial prophylaxis"},
		MonitorFor:   []string{"Confusion", "Dark urine", "Yellowing of skin"},
	},
	{
		ID:          "labyrinthitis",
		Label:       "Labyrinthitis",
		Description: "Inner ear inflammation affecting balance or hearing.",
		Severity:    SeverityLow,
		Rule: rules.AllOf(
			rules.SymW("dizziness", 1.5),
			rules.Weighted(rules.OneOf(rules.Sym("hearing_loss"), rules.Sym("ear_pain")), 1.5),
			rules.SymW("nausea", 0.5),
		),
		Actions:     []string{"Rest lying still", "Avoid driving while dizzy"},
		RiskFactors: []string{"Recent cold or flu"},
		MonitorFor:  []string{"Double vision", "Slurred speech"},
	},
}
