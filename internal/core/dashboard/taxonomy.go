// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dashboard

import "github.com/taibuivan/sabha/internal/core/attendance"

// Reference names shared by several metrics.
const (
	starKshetra      = "क्षेत्र"
	starPrant        = "प्रांत"
	starAkhilBharat  = "अ. भा."
	starGatividhi    = "गतिविधि"
	starVividh       = "विविध क्षेत्र"
	prakarVividh     = "विविध क्षेत्र"
	prakarSangh      = "रा. स्व. संघ"
	kshetraPracharak = "क्षेत्र प्रचारक"
	prantPracharak   = "प्रांत प्रचारक"
	pracharakPramukh = "क्षेत्र प्रचारक प्रमुख"
)

// Metric keys are read by the existing console and must not change.
var taxonomies = map[attendance.Population][]Metric{
	attendance.GeneralAssembly: {
		Total("totalUsers"),
		DayitvaSet("sanghachalakDataCount", "मा. क्षेत्र संघचालक", "मा. प्रांत संघचालक", "मा. सह क्षेत्र संघचालक", "मा. सह प्रांत संघचालक"),
		DayitvaSet("karyvahakDataCount", "क्षेत्र कार्यवाह", "प्रांत कार्यवाह", "सह क्षेत्र कार्यवाह", "सह प्रांत कार्यवाह"),
		DayitvaSet("pracharakDataCount", kshetraPracharak, prantPracharak, "सह क्षेत्र प्रचारक", "सह प्रांत प्रचारक"),
		DayitvaSet("sharirikPramukDataCount", "क्षेत्र शारीरिक प्रमुख", "प्रांत शारीरिक प्रमुख", "सह क्षेत्र शारीरिक प्रमुख"),
		DayitvaSet("baudhikPramukhDataCount", "क्षेत्र बौद्धिक प्रमुख", "प्रांत बौद्धिक प्रमुख", "सह क्षेत्र बौद्धिक प्रमुख"),
		DayitvaSet("sevaPramukhDataCount", "क्षेत्र सेवा प्रमुख", "प्रांत सेवा प्रमुख", "सह क्षेत्र सेवा प्रमुख", "सह प्रांत सेवा प्रमुख"),
		DayitvaSet("vyavasthaPramukhDataCount", "क्षेत्र व्यवस्था प्रमुख", "प्रांत व्यवस्था प्रमुख"),
		DayitvaSet("samparkPramukhDataCount", "क्षेत्र संपर्क प्रमुख", "क्षेत्र सह संपर्क प्रमुख", "प्रांत संपर्क प्रमुख", "संपर्क प्रमुख", "सह क्षेत्र संपर्क प्रमुख"),
		DayitvaSet("pracharPramukhDataCount", "क्षेत्र प्रचार प्रमुख", "प्रचार प्रमुख", "प्रांत प्रचार प्रमुख", "सह क्षेत्र प्रचार प्रमुख"),
		DayitvaSet("vibhagPramukhDataCount", "विभाग प्रचारक"),
		DayitvaSet("pratinidhiDataCount", "प्रतिनिधि"),
		DayitvaSet("purvPrantPracharakDataCount", "पूर्व प्रांत प्रचारक"),
		DayitvaSet("nimarntritDataCount", "विशेष निमंत्रित"),
		StarPrakar("vividhkshetraDataCount", starVividh, prakarVividh),
		StarPrakar("prantShahaDataCount", starPrant, prakarSangh),
		GenderCount("femaleCount", attendance.Female),
		FlagAny("baithakCount", attendance.GeneralAssembly.Schema().Flags...),
		FlagAny("karykariMandalBaithakCount", "karyakari_madal"),
	},

	attendance.ProvinceOrganizer: {
		Total("totalUsers"),
		Star("a_b_adhikariTotal", starAkhilBharat),
		Star("gatividhiTotal", starGatividhi),
		StarDayitva("kshetraPracharkTotal", starKshetra, kshetraPracharak),
		StarDayitva("kshetraPracharkPramukhTotal", starKshetra, pracharakPramukh),
		StarDayitva("prantPracharkTotal", starPrant, prantPracharak),
		StarPrakar("vividhKshetraTotal", starVividh, prakarVividh),
		FlagAny("baithakShahsankhya", attendance.ProvinceOrganizer.Schema().Flags...),
		FlagAny("baithakShahSuchi", attendance.ProvinceOrganizer.Schema().Flags...),
	},

	attendance.WorkingCouncil: {
		Total("totalUsers"),
		Star("a_b_adhikariTotal", starAkhilBharat),
		Sum("kshtrasanchalkaTotal",
			StarDayitva("kshetra_sanghachalak", starKshetra, "मा. क्षेत्र संघचालक"),
			StarDayitva("sah_kshetra_sanghachalak", starKshetra, "मा. सह क्षेत्र संघचालक"),
		),
		Sum("kshetraPracharakTotal",
			StarDayitva("kshetra_pracharak", starKshetra, kshetraPracharak),
			StarDayitva("sah_kshetra_pracharak", starKshetra, "सह क्षेत्र प्रचारक"),
		),
		StarDayitva("kshetraPracharakPramukhTotal", starKshetra, pracharakPramukh),
		Sum("kshetrakaryavah",
			StarDayitva("kshetra_karyavah", starKshetra, "क्षेत्र कार्यवाह"),
			StarDayitva("sah_kshetra_karyavah", starKshetra, "सह क्षेत्र कार्यवाह"),
		),
		Sum("prantkaryavahTotal",
			StarDayitva("prant_karyavah", starPrant, "प्रांत कार्यवाह"),
			StarDayitva("sah_prant_karyavah", starPrant, "सह प्रांत कार्यवाह"),
		),
		Sum("prantsanghachalakTotal",
			StarDayitva("prant_sanghachalak", starPrant, "मा. प्रांत संघचालक"),
			StarDayitva("sah_prant_sanghachalak", starPrant, "मा. सह प्रांत संघचालक"),
		),
		Sum("prantPracharak_total",
			StarDayitva("prant_pracharak", starPrant, prantPracharak),
			StarDayitva("sah_prant_pracharak", starPrant, "सह प्रांत प्रचारक"),
		),
		StarPrakar("vividhKshetraTotal", starVividh, prakarVividh),
		FlagAny("baithakShahsankhya", "karyakari_mandal_baithak"),
		FlagAny("baithakShahSuchi", attendance.WorkingCouncil.Schema().Flags...),
	},
}

// Taxonomy returns the metrics of a population's dashboard.
func Taxonomy(population attendance.Population) []Metric {
	return taxonomies[population]
}
