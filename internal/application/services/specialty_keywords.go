package services

// doctorSpecialtyKeywords maps canonical specialties to the keyword variants
// found in doctor specialization strings. Expansion for doctor matching is
// bidirectional: a specialty matches a table entry when either contains the
// other as a substring.
var doctorSpecialtyKeywords = map[string][]string{
	"neurosurgery":       {"neurosurgery", "neurosurgeon", "brain surgery", "neuro"},
	"neurology":          {"neurology", "neurologist", "neuro"},
	"cardiology":         {"cardiology", "cardiologist", "heart", "cardiac"},
	"orthopedics":        {"orthopedics", "orthopaedics", "orthopedic", "orthopaedic", "bone", "joint", "fracture", "surgeon"},
	"gastroenterology":   {"gastroenterology", "gastroenterologist", "gastro", "digestive"},
	"pulmonology":        {"pulmonology", "pulmonologist", "lung", "respiratory"},
	"dermatology":        {"dermatology", "dermatologist", "skin"},
	"ophthalmology":      {"ophthalmology", "ophthalmologist", "eye"},
	"general medicine":   {"general", "medicine", "physician", "gp", "family"},
	"emergency medicine": {"emergency", "trauma", "critical"},
}

// facilitySpecialtyKeywords maps canonical specialties to symptom vocabulary.
// Facility matching is one-directional: a table keyword must appear inside
// the analyzed specialty string for the canonical specialty to match.
var facilitySpecialtyKeywords = map[string][]string{
	"neurosurgery":     {"brain", "head", "neurological", "seizure", "stroke", "concussion", "headache", "migraine", "dizziness", "vertigo", "memory", "cognitive", "neurosurgery", "neurosurgeon", "neural", "neuro", "skull", "spinal cord", "tumor", "aneurysm"},
	"neurology":        {"brain", "head", "neurological", "seizure", "stroke", "concussion", "headache", "migraine", "dizziness", "vertigo", "memory", "cognitive", "neurology", "neurologist", "neural", "neuro", "nerve", "paralysis"},
	"cardiology":       {"heart", "chest", "cardiac", "arrhythmia", "blood pressure", "hypertension", "palpitation", "angina", "cardiology", "cardiologist"},
	"orthopedics":      {"bone", "fracture", "joint", "spine", "back", "knee", "shoulder", "arthritis", "ligament", "orthopedic", "orthopedics"},
	"gastroenterology": {"stomach", "digestive", "liver", "intestine", "ulcer", "acid reflux", "diarrhea", "constipation", "nausea", "gastro", "gastrointestinal"},
	"pulmonology":      {"lung", "respiratory", "asthma", "cough", "breathing", "pneumonia", "bronchitis", "shortness of breath", "pulmonary"},
	"dermatology":      {"skin", "rash", "acne", "eczema", "psoriasis", "allergy", "itching", "dermatology", "dermatologist"},
	"ophthalmology":    {"eye", "vision", "sight", "blindness", "cataract", "glaucoma", "myopia", "ophthalmology", "ophthalmologist"},
	"general medicine": {"fever", "cold", "flu", "infection", "general", "checkup", "consultation", "wellness"},
}
