package models

type Surah struct {
	Id             int    `json:"id"`
	SurahNumber    int    `json:"surahNumber"`
	NameArabic     string `json:"nameArabic"`
	NameUrdu       string `json:"nameUrdu"`
	NameEnglish    string `json:"nameEnglish"`
	RevelationType string `json:"revelationType"`
	VersesCount    int    `json:"versesCount"`
}

type Verse struct {
	Id              int    `json:"id"`
	SurahId         int    `json:"surahId"`
	VerseNumber     int    `json:"verseNumber"`
	JuzNumber       int    `json:"juzNumber,omitempty"`
	TextArabic      string `json:"textArabic"`
	TextUrdu        string `json:"textUrdu"`
	Transliteration string `json:"transliteration,omitempty"`
	Surah           *Surah `json:"surah,omitempty"`
}

type SurahVerses struct {
	Surah  *Surah  `json:"surah,omitempty"`
	Verses []Verse `json:"verses"`
}

type Juz struct {
	Id          int     `json:"id"`
	JuzNumber   int     `json:"juzNumber"`
	NameArabic  string  `json:"nameArabic,omitempty"`
	NameUrdu    string  `json:"nameUrdu,omitempty"`
	VersesCount int     `json:"versesCount,omitempty"`
	Verses      []Verse `json:"verses,omitempty"`
}

type VerseSearchResult struct {
	Query   string  `json:"query"`
	Results []Verse `json:"results"`
	Total   int     `json:"total"`
}
