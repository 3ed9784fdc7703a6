package mcpserver

// NoteFormatContract describes the layout of notes the pipeline
// generates, so LLM consumers reading the vault know what to expect.
const NoteFormatContract = `# Ansuz Generated Note Format

Every note Ansuz produces from a voice memo follows this fixed layout:

` + "```" + `markdown
# <title>

**Date:** 2024-05-01 14:30:05
**Audio:** [[attachments/20240501_143005_<summary>.m4a]]

## Summary
<2-3 sentence summary>

## Transcription
<full transcript text>

---
*Generated automatically from voice memo*
` + "```" + `

## Rules

1. One note per voice memo, written once, never updated afterwards.
2. Note filenames are ` + "`" + `{creation-timestamp}_{sanitized title}.md` + "`" + `
   under the configured notes folder.
3. The **Audio** line embeds the stored copy of the recording by its
   vault-relative path.
4. Each note is also linked from the daily log for its creation date
   (` + "`" + `YYYY-MM-DD.md` + "`" + ` in the diary folder) under a
   "## Voice Memos" heading, link written without the .md extension.
5. Notes are generated artifacts: edit them freely, but Ansuz will not
   regenerate or reconcile edits.
`
