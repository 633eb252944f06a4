package note

// Prompt and fallback templates. The section enumerations here are the
// content contract: the generator is instructed to use only information
// explicitly present in the transcript and to write the literal
// "Not mentioned." for any section lacking source data. Adherence is
// the model's job by construction of the prompt; nothing downstream
// verifies it.

const soapPrompt = `You are a medical documentation assistant.
Your task is to convert the provided clinical transcript into a concise, accurate, and well-structured SOAP note.
Only use information explicitly stated in the transcript.
Do NOT add, infer, or assume any data not mentioned.
If a section has no data in the transcript, write: “Not mentioned.”

Format exactly as follows:

SOAP NOTE
Patient Name:
DOB:
Clinician:
Date:
Setting: (telemedicine / in-person) — based on transcript

S – Subjective
• Chief Complaint:
• History of Present Illness:
• Review of Systems (only items mentioned):
• Past Medical History:
• Medications:
• Allergies:
• Family History:
• Social History:

O – Objective
• Exam findings from transcript
(If telehealth and no exam provided, write: “No physical exam performed; assessment based on verbal report.”)
• Vitals if mentioned

A – Assessment
• List all clinician-stated assessments or inferred concerns explicitly stated in the transcript
• Do NOT generate diagnoses that were not discussed

P – Plan
• Diagnostics ordered or recommended
• Treatments/medications advised
• Work restrictions
• Safety netting / follow-up advice

Now generate the SOAP note based on the following transcript:

[TRANSCRIPT]
{{TRANSCRIPT_HERE}}

`

const hpPrompt = `You are a medical documentation assistant.
Convert the provided transcript into a structured History & Physical (H&P) note.
Use only information explicitly stated. Do NOT guess or add details.
If a section is missing information, mark it as “Not mentioned.”

Format exactly as follows:

HISTORY & PHYSICAL (H&P)

Patient Name:
DOB:
Clinician:
Date:
Setting:

HISTORY
Chief Complaint:
History of Present Illness:
Past Medical History:
Past Surgical History:
Medications:
Allergies:
Family History:
Social History:
Review of Systems:
(Only list items explicitly found in the transcript.)

PHYSICAL EXAM
• If no exam data exists, write: “Not performed in transcript.”

ASSESSMENT
• Summarize the clinician’s diagnostic thinking exactly as discussed.
• Do NOT generate new differentials unless mentioned.

PLAN
• Document investigations ordered or recommended
• Treatment recommendations
• Follow-up instructions
• Any disposition (e.g., clinic referral, ER recommendation)

Now generate the H&P note using the transcript below:

[TRANSCRIPT]
{{TRANSCRIPT_HERE}}

`

const soapFallback = `SOAP NOTE
Patient Name: Not mentioned.
DOB: Not mentioned.
Clinician: Not mentioned.
Date: Not mentioned.
Setting: Not mentioned.

S – Subjective
• Chief Complaint: Not mentioned.
• History of Present Illness: {{HPI}}
• Review of Systems (only items mentioned): Not mentioned.
• Past Medical History: Not mentioned.
• Medications: Not mentioned.
• Allergies: Not mentioned.
• Family History: Not mentioned.
• Social History: Not mentioned.

O – Objective
• Exam findings from transcript
No physical exam performed; assessment based on verbal report.
• Vitals if mentioned
Not mentioned.

A – Assessment
• Not mentioned.

P – Plan
• Not mentioned.
`

const hpFallback = `HISTORY & PHYSICAL (H&P)

Patient Name: Not mentioned.
DOB: Not mentioned.
Clinician: Not mentioned.
Date: Not mentioned.
Setting: Not mentioned.

HISTORY
Chief Complaint: Not mentioned.
History of Present Illness: {{HPI}}
Past Medical History: Not mentioned.
Past Surgical History: Not mentioned.
Medications: Not mentioned.
Allergies: Not mentioned.
Family History: Not mentioned.
Social History: Not mentioned.
Review of Systems: Not mentioned.

PHYSICAL EXAM
• Not performed in transcript.

ASSESSMENT
• Not mentioned.

PLAN
• Not mentioned.
`
