package models

import "time"

type Bookmark struct {
	Id        string     `json:"id"`
	VerseId   int        `json:"verseId"`
	Note      string     `json:"note,omitempty"`
	Verse     *Verse     `json:"verse,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

type CreateBookmarkRequest struct {
	VerseId int    `json:"verseId"`
	Note    string `json:"note,omitempty"`
}

type UpdateBookmarkRequest struct {
	Note string `json:"note"`
}

type BookmarkedVerses struct {
	VerseIds []int `json:"verseIds"`
}

type ReadingProgress struct {
	LastSurahNumber      int     `json:"lastSurahNumber"`
	LastVerseId          int     `json:"lastVerseId"`
	CompletionPercentage float64 `json:"completionPercentage"`
}

type UpdateProgressRequest struct {
	SurahNumber int `json:"surahNumber"`
	VerseId     int `json:"verseId"`
}

type UploadResponse struct {
	Url      string `json:"url"`
	Filename string `json:"filename,omitempty"`
}
