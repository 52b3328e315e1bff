package format

// MaskPhone renders a Brazilian phone number: "(11) 3333-4444" for landlines,
// "(11) 99999-8888" for mobiles. Incomplete numbers are returned as digits.
func MaskPhone(raw string) string {
	d := Digits(raw)
	switch {
	case len(d) < 10:
		return d
	case len(d) == 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:10]
	default:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:11]
	}
}

// MaskDocument renders a CPF (11 digits) or a CNPJ (14 digits).
func MaskDocument(raw string) string {
	d := Digits(raw)
	switch {
	case len(d) == 11:
		return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
	case len(d) >= 14:
		return d[:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
	default:
		return d
	}
}
