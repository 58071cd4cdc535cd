package llm

import (
	"fmt"
	"strings"

	"github.com/noah-isme/erasmus-advisor-api/internal/models"
)

// Prompt builders for the three advising steps. The prompts are Italian
// because the source documents and the student audience are; field names
// match the column headings of the destination tables verbatim.

// truncate caps the document context fed into a prompt.
func truncate(text string, maxChars int) string {
	if maxChars <= 0 || len(text) <= maxChars {
		return text
	}
	return text[:maxChars] + "\n\n[... testo troncato ...]"
}

// CallSummaryPrompt asks for a concise summary of a call document.
func CallSummaryPrompt(callText string, maxChars int) string {
	return fmt.Sprintf(`Sei un assistente specializzato in programmi Erasmus.
Analizza il seguente testo estratto da un bando Erasmus e creane un riassunto conciso
evidenziando:
- Periodo di apertura del bando
- Requisiti principali (inclusi i requisiti linguistici)
- Scadenze importanti
- Processo di candidatura
- Se presente, il numero di CFU (crediti formativi universitari) minimi che lo studente deve guadagnare durante l'erasmus

Contesto estratto dal bando:
%s`, truncate(callText, maxChars))
}

// DestinationsPrompt asks for the partner-institution rows of one
// department section as a JSON array.
func DestinationsPrompt(department string, period models.Period, sectionText string) string {
	return fmt.Sprintf(`Sei un assistente universitario esperto nell'analisi di bandi Erasmus.
Il tuo compito è analizzare la sezione specifica del dipartimento %q fornita di seguito.
Considera il periodo %q per filtrare le destinazioni. Se non ci sono info sul periodo ignoralo.

Estrai TUTTE le università partner elencate nella sezione, mantenendo ESATTAMENTE i campi come sono scritti nel file originale.

Per ogni università partner trovata, crea un oggetto JSON con i seguenti campi:
- "name": il nome dell'università estratto dal campo "NOME ISTITUZIONE"
- "codice_europeo": valore del campo "CODICE EUROPEO"
- "nome_istituzione": valore del campo "NOME ISTITUZIONE"
- "codice_area": valore del campo "CODICE AREA"
- "posti": valore del campo "POSTI"
- "durata_per_posto": valore del campo "DURATA PER POSTO"
- "livello": valore del campo "LIVELLO"
- "dettagli_livello": valore del campo "DETTAGLI LIVELLO"
- "requisiti_linguistici": valore del campo "REQUISITI LINGUISTICI"
- "description": una breve descrizione accattivante di 1-2 frasi sull'università

IMPORTANTE:
- Restituisci ESCLUSIVAMENTE un array JSON valido
- Non aggiungere testo, spiegazioni o commenti prima o dopo l'array
- Se un campo è vuoto nel file, inserisci una stringa vuota "" o null
- Se non trovi destinazioni per il dipartimento, restituisci un array vuoto: []
- Assicurati che il JSON sia sintatticamente corretto
- Mantieni i valori dei campi esattamente come appaiono nel file
- I campi devono corrispondere esattamente a quelli del file: CODICE EUROPEO | NOME ISTITUZIONE | CODICE AREA | DESCRIZIONE AREA ISCED | POSTI | DURATA PER POSTO | LIVELLO | DETTAGLI LIVELLO | REQUISITI LINGUISTICI | BLENDED | SHORT MOBILITY | BIP | CIRCLE U | SOTTO CONDIZIONE | NOTE PER GLI STUDENTI

--- SEZIONE DEL DIPARTIMENTO %q ---
%s`, department, period, department, sectionText)
}

// ExamsCompatibilityPrompt asks for a compatibility analysis between the
// student's study plan and a destination's course catalog. The period
// lines only appear when the session recorded one.
func ExamsCompatibilityPrompt(destination, studyPlanText, examText string, period *models.Period) string {
	var periodInfo, periodStep, periodNotes, periodPriority string
	if period != nil {
		name := "autunnale (Fall)"
		if *period == models.PeriodSpring {
			name = "primaverile (Spring)"
		}
		periodInfo = fmt.Sprintf("\n**PERIODO ERASMUS SELEZIONATO:** %s\n", name)
		periodStep = "\n6. IMPORTANTE: Indica nel campo 'notes' degli esami se il corso è disponibile nel periodo selezionato dallo studente. Se il PDF degli esami specifica i periodi (Fall/Spring, Semester 1/2, ecc.), usa queste informazioni per segnalare la compatibilità temporale."
		periodNotes = " + indicazione del periodo se disponibile nel PDF"
		periodPriority = fmt.Sprintf(`
- Dai priorità agli esami disponibili nel periodo %s selezionato dallo studente
- Nel riassunto finale, specifica esplicitamente quanti esami sono compatibili con il periodo %s`, name, name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `Sei un esperto consulente universitario specializzato in programmi Erasmus.
Il tuo compito è analizzare la compatibilità tra il piano di studi di uno studente
e gli esami disponibili presso un'università di destinazione Erasmus.

**PIANO DI STUDI DELLO STUDENTE:**
%s

**ESAMI DISPONIBILI PRESSO L'UNIVERSITÀ DI DESTINAZIONE (%s):**
%s
%s
**ISTRUZIONI:**
1. Analizza il piano di studi dello studente per identificare gli esami
2. Trova corrispondenze tra esami dello studente e corsi dell'università di destinazione
3. Suggerisci esami aggiuntivi interessanti per il profilo dello studente
4. Calcola un punteggio di compatibilità complessivo (0-100)
5. Fornisci un riassunto dell'analisi%s

**FORMATO DI RISPOSTA RICHIESTO (JSON):**
{
    "matched_exams": [
        {
            "student_exam": "Nome esame dello studente",
            "destination_course": "Nome corso di destinazione corrispondente",
            "compatibility": "alta",
            "credits_student": "6 CFU",
            "credits_destination": "6 ECTS",
            "notes": "Descrizione della corrispondenza%s"
        }
    ],
    "suggested_exams": [
        {
            "course_name": "Nome corso suggerito",
            "credits": "6 ECTS",
            "reason": "Motivo del suggerimento",
            "category": "Computer Science"
        }
    ],
    "compatibility_score": 85.0,
    "analysis_summary": "Riassunto dettagliato dell'analisi di compatibilità..."
}

IMPORTANTE:
- Restituisci SOLO il JSON, senza testo aggiuntivo prima o dopo
- Se non trovi corrispondenze, lascia gli array vuoti ma mantieni la struttura
- Il punteggio deve essere un numero tra 0 e 100%s`,
		studyPlanText, destination, examText, periodInfo, periodStep, periodNotes, periodPriority)

	return b.String()
}
