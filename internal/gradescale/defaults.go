package gradescale

// defaultFileScale is the built-in grading scheme: the standard 4.0 letter
// scale plus the faculty module credit table. A YAML file supplied via
// SCALE_CONFIG overrides any section of it.
func defaultFileScale() fileScale {
	return fileScale{
		GradePoints: map[string]float64{
			"A+": 4.0,
			"A":  4.0,
			"A-": 3.7,
			"B+": 3.3,
			"B":  3.0,
			"B-": 2.7,
			"C+": 2.3,
			"C":  2.0,
			"C-": 1.7,
			"D+": 1.3,
			"D":  1.0,
			"E":  0.0,
			"F":  0.0,
		},
		ScoreBands: []Band{
			{Min: 90, Point: 4.0},
			{Min: 85, Point: 3.7},
			{Min: 80, Point: 3.3},
			{Min: 75, Point: 3.0},
			{Min: 70, Point: 2.7},
			{Min: 65, Point: 2.3},
			{Min: 60, Point: 2.0},
			{Min: 55, Point: 1.7},
			{Min: 50, Point: 1.3},
			{Min: 45, Point: 1.0},
			{Min: 0, Point: 0.0},
		},
		Credits: map[string]float64{
			// Year 1 – common IT
			"IT1010": 4, "IT1020": 4, "IT1030": 4, "IT1040": 3,
			"IT1050": 2, "IT1060": 3, "IT1080": 3, "IT1090": 4,
			"IT1100": 4,
			// Year 2 – core IT
			"IT2020": 4, "IT2030": 4, "IT2040": 4, "IT2050": 4,
			"IT2060": 4, "IT2070": 4, "IT2080": 4, "IT2090": 2,
			"IT2100": 1, "IT2110": 3,
			// Year 3
			"IT3010": 4, "IT3020": 4, "IT3030": 4, "IT3040": 4,
			"IT3050": 1, "IT3060": 4, "IT3070": 4, "IT3080": 4,
			"IT3090": 3, "IT3110": 8,
			// Year 4
			"IT4010": 16, "IT4070": 2, "IT4020": 4, "IT4030": 4,
			"IT4040": 4, "IT4050": 4, "IT4060": 4, "IT4090": 4,
			"IT4100": 4, "IT4110": 4, "IT4120": 4, "IT4130": 4,
			// Software engineering stream
			"SE1010": 4, "SE2010": 4, "SE2020": 4, "SE3010": 4,
			"SE3020": 4, "SE3030": 4, "SE3040": 4, "SE3050": 3,
			"SE3060": 4, "SE3070": 4, "SE3080": 3, "SE4010": 4,
			"SE4020": 4, "SE4030": 4, "SE4040": 4, "SE4050": 4,
			"SE4060": 4,
			// Information engineering stream
			"IE1004": 4, "IE1014": 3, "IE1024": 3, "IE1034": 3,
			"IE1044": 3, "IE2004": 3, "IE2024": 3, "IE2034": 3,
			"IE2044": 3, "IE2064": 4, "IE2074": 3, "IE2084": 3,
		},
		DefaultCredit: 3,
	}
}
