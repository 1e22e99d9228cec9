package classify

import (
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/hunju/ledgersort/internal/taxonomy"
)

// systemInstruction builds the fixed system prompt: task description, the
// canonical column header and the category taxonomy as a nested mapping.
func systemInstruction(tax *taxonomy.Taxonomy) string {
	var b strings.Builder

	b.WriteString("1. 지침\n")
	b.WriteString("당신은 금융 거래 내역을 전문적으로 분류하는 AI입니다.\n\n")

	b.WriteString("2. 데이터\n")
	b.WriteString("사용자로부터 '탭'(\\t)으로 구분된 금융 거래 내역 데이터 리스트를 받습니다.\n")
	b.WriteString("입력 데이터의 컬럼 순서는 다음과 같습니다:\n")
	b.WriteString(strings.Join(CanonicalColumns, "\t"))
	b.WriteString("\n\n")

	b.WriteString("3. 카테고리\n")
	b.WriteString("데이터 분류 기준에 대한 카테고리는 \"주요_카테고리\": [세부_카테고리] 의 JSON 으로 구성되어 있습니다.\n")
	b.WriteString("카테고리 리스트는 다음과 같습니다:\n")
	b.WriteString(tax.PromptJSON())
	b.WriteString("\n\n")

	b.WriteString("당신은 이 데이터를 행 단위로 분석하여 각 거래에 대해 '거래_유형', '주요_카테고리', '세부_카테고리', '판단_사유'를 추론해야 합니다.\n")
	b.WriteString("결과 JSON 리스트의 각 객체에는 원본 문장('인풋_문장')을 포함해야 하며, 어떠한 설명 없이 오직 JSON 리스트 형식으로만 응답해야 합니다.\n\n")

	b.WriteString("다음을 순차적으로 수행하세요.\n\n")
	b.WriteString("1. 제공되는 모든 결제 문자열 리스트를 분석하여\n")
	b.WriteString("2. 각 항목에 대해 거래가 '입금'인지 '출금'인지 판단하고\n")
	b.WriteString("3. 해당 거래에 가장 적합한 '주요 카테고리'와 '세부 카테고리'를 기준에 따라 부여하고\n")
	b.WriteString("4. 그 사유를 1문장으로 명확히 작성해야 합니다.\n\n")
	b.WriteString("* 결과는 반드시 JSON 배열 형식으로만 응답해야 합니다.\n")

	return b.String()
}

// userPrompt wraps one batch as the content to classify, count-prefixed so
// the model is told how many results to return.
func userPrompt(batch []string) (string, error) {
	encoded, err := json.Marshal(batch)
	if err != nil {
		return "", fmt.Errorf("classify.userPrompt: %w", err)
	}
	return fmt.Sprintf(
		"다음 %d개의 결제 내역을 분류하세요. 결과는 다음 리스트와 개수가 일치하는 JSON 배열이어야 합니다: \n%s",
		len(batch), encoded), nil
}

// responseSchema constrains the model output to an array of objects carrying
// exactly the five Result fields, with the direction restricted to its enum.
func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"인풋_문장": {
					Type:        genai.TypeString,
					Description: "입력으로 받은 원본 결제 문자열",
				},
				"거래_유형": {
					Type: genai.TypeString,
					Enum: []string{DirectionCredit, DirectionDebit, DirectionReversal},
				},
				"주요_카테고리": {
					Type:        genai.TypeString,
					Description: "가장 적합한 대분류 카테고리",
				},
				"세부_카테고리": {
					Type:        genai.TypeString,
					Description: "가장 적합한 소분류 카테고리",
				},
				"판단_사유": {
					Type:        genai.TypeString,
					Description: "위의 카테고리를 부여한 구체적인 이유",
				},
			},
			Required: []string{"인풋_문장", "거래_유형", "주요_카테고리", "세부_카테고리", "판단_사유"},
		},
	}
}
