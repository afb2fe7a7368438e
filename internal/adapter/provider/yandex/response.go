package yandex

// apiResponse is the Yandex Dictionary lookup response.
type apiResponse struct {
	Def []apiDef `json:"def"`
}

// apiDef is one part-of-speech article.
type apiDef struct {
	Text string  `json:"text"`
	Pos  string  `json:"pos"`
	Ts   string  `json:"ts"`
	Tr   []apiTr `json:"tr"`
}

type apiTr struct {
	Text string    `json:"text"`
	Pos  string    `json:"pos"`
	Syn  []apiText `json:"syn"`
	Ex   []apiText `json:"ex"`
}

type apiText struct {
	Text string `json:"text"`
}
