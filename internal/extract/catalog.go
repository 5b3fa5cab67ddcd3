package extract

import (
	"regexp"

	"github.com/tomless5599/TP2/constants"
)

// methodPatterns is the closed catalog of metrics per assessment method.
// Content is domain data: the vocabularies cover French reports as produced
// in the field, including unaccented spellings coming out of OCR.
var methodPatterns = map[string][]*Pattern{
	constants.MethodGarg: {
		{
			Name: "body_weight_kg",
			Strict: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(?:BW|poids\s+(?:du\s+)?sujet)\s*[:=]\s*(?P<value>[0-9]+(?:[\.,][0-9]+)?)`),
				regexp.MustCompile(`(?i)poids\s*:\s*(?P<value>[0-9]+(?:[\.,][0-9]+)?)\s*kg`),
			},
			Keywords: []string{"poids", "bw", "poids du sujet"},
		},
		{
			Name: "vo2max_ml_per_kg_min",
			Strict: []*regexp.Regexp{
				regexp.MustCompile(`(?i)vo2\s*max\s*[:=]\s*(?P<value>[0-9]+(?:[\.,][0-9]+)?)`),
			},
			Keywords: []string{"vo2max", "vo2 max", "ml o2"},
		},
		{
			Name: "task_duration_min",
			Strict: []*regexp.Regexp{
				regexp.MustCompile(`(?i)dur(?:ée|ee)\s*(?:totale\s*)?[:=]\s*(?P<value>[0-9]+(?:[\.,][0-9]+)?)\s*(?:min|minutes)`),
				regexp.MustCompile(`(?i)t\s*=\s*(?P<value>[0-9]+(?:[\.,][0-9]+)?)\s*min`),
			},
			Keywords: []string{"duree", "durée", "temps", "minutes"},
		},
		{
			Name: "sitting_time_percent",
			Strict: []*regexp.Regexp{
				regexp.MustCompile(`(?i)assis\s*[:=]\s*(?P<value>[0-9]+(?:[\.,][0-9]+)?)\s*%`),
			},
			Unit:     "%",
			Keywords: []string{"assis", "% assis", "position assis"},
		},
		{
			Name: "standing_time_percent",
			Strict: []*regexp.Regexp{
				regexp.MustCompile(`(?i)debout\s*[:=]\s*(?P<value>[0-9]+(?:[\.,][0-9]+)?)\s*%`),
			},
			Unit:     "%",
			Keywords: []string{"debout", "% debout", "position debout"},
		},
		{
			Name: "stooped_time_percent",
			Strict: []*regexp.Regexp{
				regexp.MustCompile(`(?i)pench[ée]\s*[:=]\s*(?P<value>[0-9]+(?:[\.,][0-9]+)?)\s*%`),
			},
			Unit:     "%",
			Keywords: []string{"penche", "penché", "% penche"},
		},
		{
			Name: "total_energy_kcal_min",
			Strict: []*regexp.Regexp{
				regexp.MustCompile(`(?i)d[ée]pense\s+energetique.*?(?P<value>[0-9]+(?:[\.,][0-9]+)?)\s*kcal/min`),
			},
			Unit: "kcal/min",
			Keywords: []string{
				"depense energetique totale",
				"dépense énergétique totale",
				"kcal/min",
				"depense totale",
			},
		},
		{
			Name: "total_energy_l_o2_min",
			Strict: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(?P<value>[0-9]+(?:[\.,][0-9]+)?)\s*l\s*o2/min`),
			},
			Unit:     "l o2/min",
			Keywords: []string{"o2/min", "l o2", "litre o2"},
		},
	},
	constants.MethodKodak: {
		{
			Name: "total_points",
			Strict: []*regexp.Regexp{
				regexp.MustCompile(`(?i)total\s+des\s+points\s*[:=]\s*(?P<value>[0-9]+(?:[\.,][0-9]+)?)`),
			},
			Keywords: []string{"total des points", "score total", "points"},
		},
		{
			Name: "vo2_l_min",
			Strict: []*regexp.Regexp{
				regexp.MustCompile(`(?i)vo2\s*[:=]\s*(?P<value>[0-9]+(?:[\.,][0-9]+)?)\s*l\s*o2/min`),
			},
			Unit:     "l o2/min",
			Keywords: []string{"vo2", "o2/min", "litres"},
		},
		{
			Name: "main_effort_type",
			Strict: []*regexp.Regexp{
				regexp.MustCompile(`(?i)effort\s+principal\s*[:=]\s*(?P<value>[a-zàéèù\-\s]+)`),
				regexp.MustCompile(`(?i)type\s+d['e]effort\s*[:=]\s*(?P<value>[a-zàéèù\-\s]+)`),
			},
			Keywords: []string{"effort principal", "type effort", "effort"},
		},
		{
			Name: "effort_duration_percent",
			Strict: []*regexp.Regexp{
				regexp.MustCompile(`(?i)%\s+du\s+temps\s*[:=]\s*(?P<value>[0-9]+(?:[\.,][0-9]+)?)`),
			},
			Unit:     "%",
			Keywords: []string{"% du temps", "temps", "pourcentage"},
		},
	},
	constants.MethodRSST: {
		{
			Name: "weighted_sum_kcal_min",
			Strict: []*regexp.Regexp{
				regexp.MustCompile(`(?i)sommation\s+pond[ée]r[ée]e.*?(?P<value>[0-9]+(?:[\.,][0-9]+)?)\s*kcal/min`),
			},
			Unit:     "kcal/min",
			Keywords: []string{"sommation ponderee", "pondérée", "kcal/min"},
		},
		{
			Name: "task_duration_min",
			Strict: []*regexp.Regexp{
				regexp.MustCompile(`(?i)dur[ée]e\s+totale\s*[:=]\s*(?P<value>[0-9]+(?:[\.,][0-9]+)?)\s*min`),
			},
			Keywords: []string{"duree", "durée", "temps", "minutes"},
		},
		{
			Name: "average_work_kcal_min",
			Strict: []*regexp.Regexp{
				regexp.MustCompile(`(?i)travail\s+moyen\s*[:=]\s*(?P<value>[0-9]+(?:[\.,][0-9]+)?)\s*kcal/min`),
			},
			Unit:     "kcal/min",
			Keywords: []string{"travail moyen", "kcal/min", "travail"},
		},
		{
			Name: "rsst_classification",
			Strict: []*regexp.Regexp{
				regexp.MustCompile(`(?i)classification\s+rsst\s*[:=]\s*(?P<value>[a-zàéèù\-\s]+)`),
			},
			Keywords: []string{"classification rsst", "rsst", "classement"},
		},
		{
			Name: "aiha_classification",
			Strict: []*regexp.Regexp{
				regexp.MustCompile(`(?i)classification\s+aiha\s*[:=]\s*(?P<value>[a-zàéèù\-\s]+)`),
			},
			Keywords: []string{"classification aiha", "aiha", "classement"},
		},
	},
}

// PatternsFor returns the ordered pattern list for a method, nil when the
// method is unknown.
func PatternsFor(method string) []*Pattern {
	return methodPatterns[method]
}
