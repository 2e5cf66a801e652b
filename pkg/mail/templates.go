package mail

import "fmt"

// EnrollmentConfirmation acknowledges a submitted application.
func EnrollmentConfirmation(to, fullName, applicationNumber string) Message {
	return Message{
		To:      to,
		Subject: "Enrollment Application Received",
		Body: fmt.Sprintf("Dear %s,\n\nYour enrollment application has been received and is now in processing. Your application number is %s. Please keep it for future reference.\n\nRegards,\nAdmissions Team",
			fullName, applicationNumber),
	}
}

// ApplicationApproved informs the applicant of an approval.
func ApplicationApproved(to, fullName, applicationNumber string) Message {
	return Message{
		To:      to,
		Subject: "Enrollment Application Approved",
		Body: fmt.Sprintf("Dear %s,\n\nCongratulations! Your application %s has been approved. Please proceed with the course payment to complete your enrollment.\n\nRegards,\nAdmissions Team",
			fullName, applicationNumber),
	}
}

// ApplicationDenied informs the applicant of a denial.
func ApplicationDenied(to, fullName, applicationNumber string) Message {
	return Message{
		To:      to,
		Subject: "Enrollment Application Update",
		Body: fmt.Sprintf("Dear %s,\n\nWe regret to inform you that your application %s has been denied. You may contact the admissions office for further details.\n\nRegards,\nAdmissions Team",
			fullName, applicationNumber),
	}
}

// PaymentPlanAcknowledgment confirms the first installment of a payment plan.
func PaymentPlanAcknowledgment(to, fullName, courseName, firstInstallment, secondInstallment string) Message {
	return Message{
		To:      to,
		Subject: "Payment Plan Confirmation",
		Body: fmt.Sprintf("Dear %s,\n\nWe have received your first installment of %s for %s. The second installment of %s is due within one month.\n\nRegards,\nAccounts Team",
			fullName, firstInstallment, courseName, secondInstallment),
	}
}

// FullPaymentAcknowledgment confirms payment in full.
func FullPaymentAcknowledgment(to, fullName, courseName, amount string) Message {
	return Message{
		To:      to,
		Subject: "Payment Confirmation",
		Body: fmt.Sprintf("Dear %s,\n\nWe have received your payment of %s for %s. Your enrollment is now fully paid.\n\nRegards,\nAccounts Team",
			fullName, amount, courseName),
	}
}
