package cleaner

import (
	"regexp"

	"github.com/dtnitsch/transcript-signal/models"
)

// proceduralPattern covers the ceremonial content of call operators and
// moderators: thanking participants, handing the call over, procedural
// reminders, moving between questions, greetings and closings. A block
// matching anywhere is dropped whole; there is no partial filtering here.
var proceduralPattern = regexp.MustCompile(`(?i)(` +
	`thank you.*(joining|participating|attending)` +
	`|ladies and gentlemen` +
	`|hand(ing)?\s+(it\s+|the\s+(call|floor)\s+)?over` +
	`|turn\s+the\s+(call|floor)\s+over` +
	`|as a reminder` +
	`|(move|moving)\s+(on\s+)?to\s+the\s+next\s+question` +
	`|next question (comes|is) from` +
	`|question-and-answer session` +
	`|open the (floor|line) for questions` +
	`|please go ahead` +
	`|concludes (this|today'?s) (call|conference)` +
	`|have a (good|great|wonderful) (day|evening)` +
	`|you may (now )?disconnect` +
	`|\Agood (morning|afternoon|evening)[\s,.!]*\z` +
	`|welcome to the` +
	`)`)

// FilterProcedural drops blocks whose body is operational filler rather
// than substantive discussion. Order of the survivors is preserved.
func FilterProcedural(blocks []models.SpeakerBlock) []models.SpeakerBlock {
	kept := make([]models.SpeakerBlock, 0, len(blocks))
	for _, block := range blocks {
		if proceduralPattern.MatchString(block.Body()) {
			continue
		}
		kept = append(kept, block)
	}
	return kept
}
