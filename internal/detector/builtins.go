package detector

// BuiltinDetectors returns every built-in detector in a fixed order:
// national IDs, financial, personal, medical, then secrets. This order
// becomes the registry's insertion order and therefore the tie-break
// used by the engine's overlap-resolution policy (§4.10 rule c).
func BuiltinDetectors(entropy EntropyConfig) []Detector {
	var all []Detector
	all = append(all, NationalIDDetectors()...)
	all = append(all, FinancialDetectors()...)
	all = append(all, PersonalDetectors()...)
	all = append(all, MedicalDetectors()...)
	all = append(all, SecretDetectors(entropy)...)
	return all
}
